package kafka

import "time"

// EventType определяет тип доменного события.
type EventType string

const (
	// События заказов
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypeOrderDeleted       EventType = "order.deleted"

	// События каталога
	EventTypeProductCreated EventType = "product.created"
	EventTypeProductUpdated EventType = "product.updated"
	EventTypeProductDeleted EventType = "product.deleted"
)

// Topics для Kafka
const (
	TopicOrderEvents   = "fastfood.order.events"
	TopicCatalogEvents = "fastfood.catalog.events"
)

// OrderEvent представляет событие жизненного цикла заказа.
type OrderEvent struct {
	EventID       string    `json:"event_id"`
	EventType     EventType `json:"event_type"`
	OrderID       int64     `json:"order_id"`
	OrderNumber   int64     `json:"order_number"`
	CustomerID    int64     `json:"customer_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Timestamp     time.Time `json:"timestamp"`
}

// ProductEvent представляет событие каталога.
type ProductEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Active    bool      `json:"active"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher — контракт публикации доменных событий.
// Сервисы трактуют nil-publisher как «события выключены».
type EventPublisher interface {
	PublishEvent(topic string, key string, event interface{}) error
}
