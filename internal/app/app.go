package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fastfood/internal/api"
	healthcheck "github.com/vladislavdragonenkov/fastfood/internal/health"
	"github.com/vladislavdragonenkov/fastfood/internal/seed"
	"github.com/vladislavdragonenkov/fastfood/internal/service/order"
	"github.com/vladislavdragonenkov/fastfood/internal/service/product"
	"github.com/vladislavdragonenkov/fastfood/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run собирает платформу и обслуживает HTTP до отмены контекста.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	productOpts := []product.Option{product.WithMetrics(deps.Metrics)}
	if deps.Cache != nil {
		productOpts = append(productOpts, product.WithCache(deps.Cache))
	}
	if deps.Producer != nil {
		productOpts = append(productOpts, product.WithEvents(deps.Producer))
	}
	productService := product.NewService(deps.Products, logger.WithField("layer", "product"), productOpts...)

	orderOpts := []order.Option{order.WithMetrics(deps.Metrics)}
	if deps.Producer != nil {
		orderOpts = append(orderOpts, order.WithEvents(deps.Producer))
	}
	orderService := order.NewService(deps.Orders, logger.WithField("layer", "order"), orderOpts...)

	if cfg.SeedOnStart {
		seeder := seed.NewSeeder(deps.Products, logger.WithField("component", "seeder"), seed.WithMetrics(deps.Metrics))
		result := seeder.Run()
		logger.WithField("seeded", result.Seeded).WithField("skipped", result.Skipped).Info("startup seed finished")
	}

	healthHandler := healthcheck.NewHandler(version.String())
	if deps.Store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return deps.Store.Ping(pingCtx)
		}))
	}
	if deps.Cache != nil {
		healthHandler.RegisterChecker("redis", healthcheck.NewSimpleChecker("redis", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return deps.Cache.Ping(pingCtx)
		}))
	}

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	router := api.NewRouter(
		api.NewProductHandler(productService, logger.WithField("layer", "http")),
		api.NewOrderHandler(orderService, logger.WithField("layer", "http")),
		logger.WithField("layer", "http"),
	)
	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(opsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(opsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startOpsServer запускает служебный листенер: /metrics, /healthz, /readyz, /livez.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
