package seed

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/metrics"
)

// Seeder наполняет пустой каталог стартовым набором товаров.
// Запуск идемпотентен: непустой каталог остаётся нетронутым.
type Seeder struct {
	repo    domain.ProductRepository
	metrics *metrics.PlatformMetrics
	logger  *log.Entry
}

// Option настраивает Seeder.
type Option func(*Seeder)

// WithMetrics подключает метрику засеянных товаров.
func WithMetrics(m *metrics.PlatformMetrics) Option {
	return func(s *Seeder) {
		s.metrics = m
	}
}

// NewSeeder конструирует сидер каталога.
func NewSeeder(repo domain.ProductRepository, logger *log.Entry, opts ...Option) *Seeder {
	if logger == nil {
		logger = log.New().WithField("component", "seeder")
	}

	s := &Seeder{
		repo:   repo,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result — итог прогона сидера.
type Result struct {
	// Skipped выставлен, если каталог уже был непустым.
	Skipped bool
	// Seeded — число успешно записанных товаров.
	Seeded int
	// Failed — число товаров, которые записать не удалось.
	Failed int
}

// Run засеивает каталог. Ошибки отдельных товаров не прерывают прогон:
// они логируются, а итог отражается в Result.
func (s *Seeder) Run() Result {
	count, err := s.repo.Count()
	if err != nil {
		s.logger.WithError(err).Error("failed to check catalog size, skipping seed")
		return Result{Skipped: true}
	}
	if count > 0 {
		s.logger.WithField("products", count).Info("catalog already populated, skipping seed")
		return Result{Skipped: true}
	}

	now := time.Now().UTC()
	result := Result{}
	for _, product := range defaultCatalog() {
		product.CreatedAt = now
		product.UpdatedAt = now
		if _, err := s.repo.Add(product); err != nil {
			result.Failed++
			s.logger.WithError(err).WithField("name", product.Name).Warn("failed to seed product")
			continue
		}
		result.Seeded++
	}

	s.metrics.RecordSeededProducts(result.Seeded)
	s.logger.WithField("seeded", result.Seeded).WithField("failed", result.Failed).Info("catalog seed finished")
	return result
}

// defaultCatalog возвращает стартовое меню: по три товара на категорию,
// цены в минорных единицах.
func defaultCatalog() []domain.Product {
	return []domain.Product{
		{Name: "X-Bacon", PriceMinor: 2990, Category: domain.CategorySandwich, Description: "Burger with bacon, cheese and lettuce", Active: true},
		{Name: "X-Salad", PriceMinor: 2590, Category: domain.CategorySandwich, Description: "Burger with cheese, lettuce and tomato", Active: true},
		{Name: "Double Cheeseburger", PriceMinor: 3390, Category: domain.CategorySandwich, Description: "Two patties and double cheese", Active: true},

		{Name: "French Fries", PriceMinor: 990, Category: domain.CategorySide, Description: "Crispy fries, regular size", Active: true},
		{Name: "Onion Rings", PriceMinor: 1190, Category: domain.CategorySide, Description: "Battered onion rings", Active: true},
		{Name: "Cheese Nuggets", PriceMinor: 1290, Category: domain.CategorySide, Description: "Breaded cheese bites", Active: true},

		{Name: "Cola", PriceMinor: 690, Category: domain.CategoryDrink, Description: "Soft drink, 500 ml", Active: true},
		{Name: "Orange Juice", PriceMinor: 890, Category: domain.CategoryDrink, Description: "Freshly squeezed, 400 ml", Active: true},
		{Name: "Milkshake", PriceMinor: 1490, Category: domain.CategoryDrink, Description: "Vanilla milkshake, 400 ml", Active: true},

		{Name: "Brownie", PriceMinor: 1090, Category: domain.CategoryDessert, Description: "Chocolate brownie with nuts", Active: true},
		{Name: "Ice Cream Sundae", PriceMinor: 1190, Category: domain.CategoryDessert, Description: "Sundae with caramel topping", Active: true},
		{Name: "Apple Pie", PriceMinor: 990, Category: domain.CategoryDessert, Description: "Warm apple pie slice", Active: true},
	}
}
