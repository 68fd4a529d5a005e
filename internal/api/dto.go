package api

import (
	"time"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
)

// ProductRequest — тело запроса создания/обновления товара.
// Цены передаются в минорных единицах.
type ProductRequest struct {
	Name        string `json:"name"`
	PriceMinor  int64  `json:"price_minor"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ProductResponse — представление товара в ответе.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PriceMinor  int64     `json:"price_minor"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderItemRequest — позиция заказа в запросе на создание.
type OrderItemRequest struct {
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
}

// OrderCreateRequest — тело запроса создания заказа.
type OrderCreateRequest struct {
	CustomerID  int64              `json:"customer_id"`
	Number      int64              `json:"number"`
	Observation string             `json:"observation,omitempty"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderUpdateRequest — тело запроса обновления заказа.
// Позиции и номер после создания неизменяемы и здесь не принимаются.
type OrderUpdateRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	PaymentID     string `json:"payment_id,omitempty"`
	Observation   string `json:"observation,omitempty"`
}

// OrderItemResponse — позиция заказа в ответе.
type OrderItemResponse struct {
	ID             int64  `json:"id"`
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
}

// OrderResponse — представление заказа в ответе.
type OrderResponse struct {
	ID            int64               `json:"id"`
	CustomerID    int64               `json:"customer_id"`
	Number        int64               `json:"number"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentID     string              `json:"payment_id,omitempty"`
	Observation   string              `json:"observation,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ErrorResponse — тело ответа об ошибке.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		PriceMinor:  p.PriceMinor,
		Category:    string(p.Category),
		Description: p.Description,
		Active:      p.Active,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

func toOrderResponse(o domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceMinor: item.UnitPriceMinor,
		}
	}
	return OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		Number:        o.Number,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaymentID:     o.PaymentID,
		Observation:   o.Observation,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}
