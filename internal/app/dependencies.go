package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fastfood/internal/cache"
	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fastfood/internal/metrics"
	"github.com/vladislavdragonenkov/fastfood/internal/storage/memory"
	"github.com/vladislavdragonenkov/fastfood/internal/storage/postgres"
)

// Dependencies содержит инфраструктурные зависимости приложения.
type Dependencies struct {
	Products domain.ProductRepository
	Orders   domain.OrderRepository

	// Store не nil только при работе поверх Postgres.
	Store    *postgres.Store
	Producer *kafka.Producer
	Cache    cache.Cache
	Metrics  *metrics.PlatformMetrics
	Logger   *log.Entry
}

// NewDependencies собирает зависимости по конфигурации: Postgres при заданном
// DSN, иначе in-memory; Kafka и Redis подключаются только если настроены.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Metrics: metrics.NewPlatformMetrics(),
		Logger:  logger,
	}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		deps.Store = store
		deps.Products = postgres.NewProductRepository(store)
		deps.Orders = postgres.NewOrderRepository(store)
		logger.Info("storage: postgres")
	} else {
		deps.Products = memory.NewProductRepository()
		deps.Orders = memory.NewOrderRepository()
		logger.Info("storage: in-memory")
	}

	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err == nil {
		deps.Producer = producer
	}

	if cfg.RedisAddr != "" {
		deps.Cache = cache.NewRedisCache(cfg.RedisAddr, "fastfood")
		if err := deps.Cache.Ping(ctx); err != nil {
			logger.WithError(err).Warn("redis unreachable, continuing with cache enabled lazily")
		} else {
			logger.WithField("addr", cfg.RedisAddr).Info("redis cache initialized")
		}
	}

	return deps, nil
}

// Close освобождает внешние ресурсы.
func (d *Dependencies) Close() {
	closeKafka(d.Producer, d.Logger)
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
