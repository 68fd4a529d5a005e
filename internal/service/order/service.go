package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fastfood/internal/metrics"
)

// Service реализует операции над заказами поверх доменного репозитория.
type Service struct {
	repo    domain.OrderRepository
	events  kafka.EventPublisher
	metrics *metrics.PlatformMetrics
	logger  *log.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithEvents подключает публикацию событий заказов.
func WithEvents(publisher kafka.EventPublisher) Option {
	return func(s *Service) {
		s.events = publisher
	}
}

// WithMetrics подключает метрики операций над заказами.
func WithMetrics(m *metrics.PlatformMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService конструирует сервис заказов.
func NewService(repo domain.OrderRepository, logger *log.Entry, opts ...Option) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
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

// ItemInput — позиция заказа в запросе на создание.
type ItemInput struct {
	ProductID      int64
	ProductName    string
	Quantity       int32
	UnitPriceMinor int64
}

// CreateInput — запрос на создание заказа.
// Статусы не принимаются от клиента: новый заказ всегда received/pending.
type CreateInput struct {
	CustomerID  int64
	Number      int64
	Observation string
	Items       []ItemInput
}

// UpdateInput — запрос на обновление заказа.
// Любой известный статус может заменить любой другой: таблица переходов
// контрактом не предусмотрена.
type UpdateInput struct {
	Status        domain.OrderStatus
	PaymentStatus domain.PaymentStatus
	PaymentID     string
	Observation   string
}

// GetByID возвращает заказ или nil без ошибки, если его нет.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	defer s.trackDuration("orders.get_by_id", time.Now())

	order, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, nil
		}
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order")
		return nil, err
	}
	return &order, nil
}

// GetAll возвращает все заказы.
func (s *Service) GetAll(ctx context.Context) ([]domain.Order, error) {
	defer s.trackDuration("orders.get_all", time.Now())

	orders, err := s.repo.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return nil, err
	}
	return orders, nil
}

// GetByStatus возвращает заказы в указанном статусе; пустой срез, если их нет.
func (s *Service) GetByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	defer s.trackDuration("orders.get_by_status", time.Now())

	orders, err := s.repo.GetByStatus(status)
	if err != nil {
		s.logger.WithError(err).WithField("status", status).Error("failed to list orders by status")
		return nil, err
	}
	return orders, nil
}

// Create создаёт заказ в статусе received с неоплаченным платежом.
// Дубликат бизнес-номера отдаётся как конфликт со стороны хранилища.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Order, error) {
	defer s.trackDuration("orders.create", time.Now())

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.OrderItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceMinor: item.UnitPriceMinor,
			CreatedAt:      now,
		})
	}

	order := domain.Order{
		CustomerID:    input.CustomerID,
		Number:        input.Number,
		Status:        domain.OrderStatusReceived,
		PaymentStatus: domain.PaymentStatusPending,
		Observation:   input.Observation,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         items,
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		s.metrics.RecordValidationFailure("order_invariants")
		return domain.Order{}, errs[0]
	}

	created, err := s.repo.Add(order)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNumberConflict) {
			s.metrics.RecordNumberConflict()
			s.logger.WithField("number", input.Number).Warn("order number already exists")
			return domain.Order{}, err
		}
		s.logger.WithError(err).Error("failed to create order")
		return domain.Order{}, err
	}

	s.metrics.RecordOrderCreated()
	s.publishOrderEvent(kafka.EventTypeOrderCreated, created)

	return created, nil
}

// Update перечитывает заказ, валидирует предложенные поля и заменяет их.
// Позиции и бизнес-номер после создания неизменяемы.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (domain.Order, error) {
	defer s.trackDuration("orders.update", time.Now())

	existing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
		}
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order for update")
		return domain.Order{}, err
	}

	if err := s.validateUpdate(input); err != nil {
		return domain.Order{}, err
	}

	statusChanged := existing.Status != input.Status

	existing.Status = input.Status
	existing.PaymentStatus = input.PaymentStatus
	existing.PaymentID = input.PaymentID
	existing.Observation = input.Observation
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(existing)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to update order")
		return domain.Order{}, err
	}

	if statusChanged {
		s.metrics.RecordOrderStatusChange(string(updated.Status))
		s.publishOrderEvent(kafka.EventTypeOrderStatusChanged, updated)
	}

	return updated, nil
}

// Delete удаляет заказ вместе с позициями; false без ошибки, если записи не было.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	defer s.trackDuration("orders.delete", time.Now())

	deleted, err := s.repo.Delete(id)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to delete order")
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.metrics.RecordOrderDeleted()
	s.publishOrderEvent(kafka.EventTypeOrderDeleted, domain.Order{ID: id})

	return true, nil
}

func (s *Service) validateUpdate(input UpdateInput) error {
	if _, err := domain.ParseOrderStatus(string(input.Status)); err != nil {
		s.metrics.RecordValidationFailure("order_status_invalid")
		return err
	}
	if _, err := domain.ParsePaymentStatus(string(input.PaymentStatus)); err != nil {
		s.metrics.RecordValidationFailure("payment_status_invalid")
		return err
	}
	if len(input.PaymentID) > domain.MaxPaymentIDLen {
		s.metrics.RecordValidationFailure("payment_id_too_long")
		return domain.ErrPaymentIDTooLong
	}
	if len(input.Observation) > domain.MaxObservationLen {
		s.metrics.RecordValidationFailure("observation_too_long")
		return domain.ErrObservationTooLong
	}
	return nil
}

// publishOrderEvent отправляет событие заказа best-effort.
func (s *Service) publishOrderEvent(eventType kafka.EventType, order domain.Order) {
	if s.events == nil {
		return
	}

	event := kafka.OrderEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OrderID:       order.ID,
		OrderNumber:   order.Number,
		CustomerID:    order.CustomerID,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Timestamp:     time.Now().UTC(),
	}
	if err := s.events.PublishEvent(kafka.TopicOrderEvents, strconv.FormatInt(order.ID, 10), event); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("failed to publish order event")
	}
}

func (s *Service) trackDuration(operation string, start time.Time) {
	s.metrics.RecordOperationDuration(operation, time.Since(start))
}
