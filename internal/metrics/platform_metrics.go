package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PlatformMetrics содержит метрики каталога и заказов.
type PlatformMetrics struct {
	// Счётчики операций каталога
	productsCreated prometheus.Counter
	productsUpdated prometheus.Counter
	productsDeleted prometheus.Counter

	// Счётчики операций над заказами
	ordersCreated prometheus.Counter
	ordersDeleted prometheus.Counter

	// Переходы статусов заказов, с разбивкой по целевому статусу
	orderStatusChanges *prometheus.CounterVec

	// Нарушения бизнес-правил, с разбивкой по правилу
	validationFailures *prometheus.CounterVec

	// Конфликты уникальности бизнес-номера
	numberConflicts prometheus.Counter

	// Засеянные товары при bootstrap
	seededProducts prometheus.Counter

	// Время выполнения запросов к хранилищу на уровне сервисов
	operationDuration *prometheus.HistogramVec
}

// NewPlatformMetrics создаёт новый экземпляр метрик платформы.
func NewPlatformMetrics() *PlatformMetrics {
	return newPlatformMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newPlatformMetricsWithRegisterer(registerer prometheus.Registerer) *PlatformMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PlatformMetrics{
		productsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fastfood_products_created_total",
			Help: "Total number of catalog products created",
		}),
		productsUpdated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fastfood_products_updated_total",
			Help: "Total number of catalog products updated",
		}),
		productsDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fastfood_products_deleted_total",
			Help: "Total number of catalog products deleted",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fastfood_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fastfood_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		orderStatusChanges: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "fastfood_order_status_changes_total",
			Help: "Total number of order status changes grouped by target status",
		}, []string{"status"}),
		validationFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "fastfood_validation_failures_total",
			Help: "Total number of rejected mutations grouped by violated rule",
		}, []string{"rule"}),
		numberConflicts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fastfood_order_number_conflicts_total",
			Help: "Total number of rejected orders due to duplicate business number",
		}),
		seededProducts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fastfood_seeded_products_total",
			Help: "Total number of products inserted by the catalog seeder",
		}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "fastfood_service_operation_duration_seconds",
			Help:    "Duration of service-level operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordProductCreated увеличивает счётчик созданных товаров.
// Все Record-методы безопасны при nil-приёмнике: метрики опциональны для сервисов.
func (m *PlatformMetrics) RecordProductCreated() {
	if m == nil {
		return
	}
	m.productsCreated.Inc()
}

// RecordProductUpdated увеличивает счётчик обновлённых товаров.
func (m *PlatformMetrics) RecordProductUpdated() {
	if m == nil {
		return
	}
	m.productsUpdated.Inc()
}

// RecordProductDeleted увеличивает счётчик удалённых товаров.
func (m *PlatformMetrics) RecordProductDeleted() {
	if m == nil {
		return
	}
	m.productsDeleted.Inc()
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *PlatformMetrics) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// RecordOrderDeleted увеличивает счётчик удалённых заказов.
func (m *PlatformMetrics) RecordOrderDeleted() {
	if m == nil {
		return
	}
	m.ordersDeleted.Inc()
}

// RecordOrderStatusChange фиксирует переход заказа в новый статус.
func (m *PlatformMetrics) RecordOrderStatusChange(status string) {
	if m == nil {
		return
	}
	m.orderStatusChanges.WithLabelValues(status).Inc()
}

// RecordValidationFailure фиксирует отклонённую мутацию.
func (m *PlatformMetrics) RecordValidationFailure(rule string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(rule).Inc()
}

// RecordNumberConflict фиксирует конфликт бизнес-номера заказа.
func (m *PlatformMetrics) RecordNumberConflict() {
	if m == nil {
		return
	}
	m.numberConflicts.Inc()
}

// RecordSeededProducts фиксирует количество засеянных товаров.
func (m *PlatformMetrics) RecordSeededProducts(count int) {
	if m == nil {
		return
	}
	m.seededProducts.Add(float64(count))
}

// RecordOperationDuration записывает время выполнения операции сервиса.
func (m *PlatformMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
