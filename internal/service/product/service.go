package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fastfood/internal/cache"
	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fastfood/internal/metrics"
)

const (
	activeProductsCacheTTL = 30 * time.Second
)

// Service реализует операции каталога поверх доменного репозитория.
// Кэш, события и метрики опциональны: nil-зависимость просто выключает слой.
type Service struct {
	repo    domain.ProductRepository
	cache   cache.Cache
	events  kafka.EventPublisher
	metrics *metrics.PlatformMetrics
	logger  *log.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithCache подключает кэш витрины активных товаров.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithEvents подключает публикацию событий каталога.
func WithEvents(publisher kafka.EventPublisher) Option {
	return func(s *Service) {
		s.events = publisher
	}
}

// WithMetrics подключает метрики операций каталога.
func WithMetrics(m *metrics.PlatformMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService конструирует сервис каталога.
func NewService(repo domain.ProductRepository, logger *log.Entry, opts ...Option) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "product-service")
	}

	s := &Service{
		repo:   repo,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput — запрос на создание товара.
type CreateInput struct {
	Name        string
	PriceMinor  int64
	Category    domain.Category
	Description string
	ImageURL    string
}

// UpdateInput — запрос на обновление товара.
// Семантика «заменить все перечисленные поля», а не patch-merge.
type UpdateInput struct {
	Name        string
	PriceMinor  int64
	Category    domain.Category
	Description string
	Active      bool
	ImageURL    string
}

// GetByID возвращает товар или nil без ошибки, если его нет.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	defer s.trackDuration("products.get_by_id", time.Now())

	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, nil
		}
		s.logger.WithError(err).WithField("product_id", id).Error("failed to load product")
		return nil, err
	}
	return &product, nil
}

// GetAll возвращает весь каталог.
func (s *Service) GetAll(ctx context.Context) ([]domain.Product, error) {
	defer s.trackDuration("products.get_all", time.Now())

	products, err := s.repo.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("failed to list products")
		return nil, err
	}
	return products, nil
}

// GetByCategory возвращает товары указанного раздела; пустой срез, если их нет.
func (s *Service) GetByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	defer s.trackDuration("products.get_by_category", time.Now())

	products, err := s.repo.GetByCategory(category)
	if err != nil {
		s.logger.WithError(err).WithField("category", category).Error("failed to list products by category")
		return nil, err
	}
	return products, nil
}

// GetActive возвращает только видимые в каталоге товары.
// При подключённом кэше витрина отдаётся из него; промах и сбой кэша
// прозрачно уходят в репозиторий.
func (s *Service) GetActive(ctx context.Context) ([]domain.Product, error) {
	defer s.trackDuration("products.get_active", time.Now())

	if cached, ok := s.activeFromCache(ctx); ok {
		return cached, nil
	}

	products, err := s.repo.GetActive()
	if err != nil {
		s.logger.WithError(err).Error("failed to list active products")
		return nil, err
	}

	s.storeActiveInCache(ctx, products)
	return products, nil
}

// Create создаёт товар из запроса. Active всегда выставляется в true.
// Поля запроса не валидируются: текущий контракт доверяет клиенту на создании.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Product, error) {
	defer s.trackDuration("products.create", time.Now())

	now := time.Now().UTC()
	product := domain.Product{
		Name:        input.Name,
		PriceMinor:  input.PriceMinor,
		Category:    input.Category,
		Description: input.Description,
		Active:      true,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Add(product)
	if err != nil {
		s.logger.WithError(err).Error("failed to create product")
		return domain.Product{}, err
	}

	s.metrics.RecordProductCreated()
	s.invalidateActiveCache(ctx)
	s.publishProductEvent(kafka.EventTypeProductCreated, created)

	return created, nil
}

// Update перечитывает товар, валидирует предложенные поля и заменяет их целиком.
// Порядок проверок фиксирован: not-found, затем цена, затем название.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (domain.Product, error) {
	defer s.trackDuration("products.update", time.Now())

	existing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		s.logger.WithError(err).WithField("product_id", id).Error("failed to load product for update")
		return domain.Product{}, err
	}

	if err := s.validateUpdate(input); err != nil {
		return domain.Product{}, err
	}

	existing.Name = input.Name
	existing.PriceMinor = input.PriceMinor
	existing.Category = input.Category
	existing.Description = input.Description
	existing.Active = input.Active
	existing.ImageURL = input.ImageURL
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(existing)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to update product")
		return domain.Product{}, err
	}

	s.metrics.RecordProductUpdated()
	s.invalidateActiveCache(ctx)
	s.publishProductEvent(kafka.EventTypeProductUpdated, updated)

	return updated, nil
}

// Delete удаляет товар; false без ошибки, если записи не было.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	defer s.trackDuration("products.delete", time.Now())

	deleted, err := s.repo.Delete(id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to delete product")
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.metrics.RecordProductDeleted()
	s.invalidateActiveCache(ctx)
	s.publishProductEvent(kafka.EventTypeProductDeleted, domain.Product{ID: id})

	return true, nil
}

func (s *Service) validateUpdate(input UpdateInput) error {
	if input.PriceMinor < 0 {
		s.metrics.RecordValidationFailure("price_negative")
		return domain.ErrPriceNegative
	}
	if strings.TrimSpace(input.Name) == "" {
		s.metrics.RecordValidationFailure("name_required")
		return domain.ErrNameRequired
	}
	if len(input.Name) > domain.MaxNameLen {
		s.metrics.RecordValidationFailure("name_too_long")
		return domain.ErrNameTooLong
	}
	if len(input.Description) > domain.MaxDescriptionLen {
		s.metrics.RecordValidationFailure("description_too_long")
		return domain.ErrDescriptionTooLong
	}
	if len(input.ImageURL) > domain.MaxImageURLLen {
		s.metrics.RecordValidationFailure("image_url_too_long")
		return domain.ErrImageURLTooLong
	}
	return nil
}

func (s *Service) activeCacheKey() string {
	return s.cache.GenerateKey("products", "active")
}

func (s *Service) activeFromCache(ctx context.Context) ([]domain.Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, s.activeCacheKey())
	if err != nil {
		s.logger.WithError(err).Warn("active products cache read failed")
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		s.logger.WithError(err).Warn("active products cache entry is corrupted")
		return nil, false
	}
	return products, true
}

func (s *Service) storeActiveInCache(ctx context.Context, products []domain.Product) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(products)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode active products for cache")
		return
	}
	if err := s.cache.Set(ctx, s.activeCacheKey(), string(raw), activeProductsCacheTTL); err != nil {
		s.logger.WithError(err).Warn("active products cache write failed")
	}
}

func (s *Service) invalidateActiveCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.activeCacheKey()); err != nil {
		s.logger.WithError(err).Warn("active products cache invalidation failed")
	}
}

// publishProductEvent отправляет событие каталога best-effort.
func (s *Service) publishProductEvent(eventType kafka.EventType, product domain.Product) {
	if s.events == nil {
		return
	}

	event := kafka.ProductEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		ProductID: product.ID,
		Name:      product.Name,
		Category:  string(product.Category),
		Active:    product.Active,
		Timestamp: time.Now().UTC(),
	}
	if err := s.events.PublishEvent(kafka.TopicCatalogEvents, strconv.FormatInt(product.ID, 10), event); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("failed to publish catalog event")
	}
}

func (s *Service) trackDuration(operation string, start time.Time) {
	s.metrics.RecordOperationDuration(operation, time.Since(start))
}
