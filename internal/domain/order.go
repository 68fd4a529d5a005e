package domain

import (
	"strings"
	"time"
)

// OrderStatus описывает стадию подготовки заказа на кухне.
type OrderStatus string

const (
	// OrderStatusReceived — заказ принят и ожидает кухню.
	OrderStatusReceived OrderStatus = "received"
	// OrderStatusInPreparation — заказ готовится.
	OrderStatusInPreparation OrderStatus = "in_preparation"
	// OrderStatusReady — заказ готов к выдаче.
	OrderStatusReady OrderStatus = "ready"
	// OrderStatusFinalized — заказ выдан и закрыт.
	OrderStatusFinalized OrderStatus = "finalized"
)

// ParseOrderStatus разбирает строковое представление статуса заказа.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case OrderStatusReceived:
		return OrderStatusReceived, nil
	case OrderStatusInPreparation:
		return OrderStatusInPreparation, nil
	case OrderStatusReady:
		return OrderStatusReady, nil
	case OrderStatusFinalized:
		return OrderStatusFinalized, nil
	default:
		return "", ErrOrderStatusInvalid
	}
}

// PaymentStatus описывает состояние оплаты заказа.
type PaymentStatus string

const (
	// PaymentStatusPending — оплата ещё не подтверждена.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusPaid — оплата подтверждена платёжным шлюзом.
	PaymentStatusPaid PaymentStatus = "paid"
	// PaymentStatusRefused — оплата отклонена.
	PaymentStatusRefused PaymentStatus = "refused"
)

// ParsePaymentStatus разбирает строковое представление статуса оплаты.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case PaymentStatusPending:
		return PaymentStatusPending, nil
	case PaymentStatusPaid:
		return PaymentStatusPaid, nil
	case PaymentStatusRefused:
		return PaymentStatusRefused, nil
	default:
		return "", ErrPaymentStatusInvalid
	}
}

// Ограничения на длину текстовых полей заказа.
const (
	MaxPaymentIDLen   = 100
	MaxObservationLen = 500
	MaxProductNameLen = 200
)

// OrderItem представляет одну позицию заказа.
// Позиции принадлежат ровно одному заказу и удаляются вместе с ним.
type OrderItem struct {
	ID int64
	// OrderID — ссылка на владеющий заказ.
	OrderID int64
	// ProductID — внешняя ссылка на товар каталога (без FK между доменами).
	ProductID int64
	// ProductName — снимок названия товара на момент заказа.
	ProductName string
	// Quantity — количество единиц товара.
	Quantity int32
	// UnitPriceMinor — цена за единицу в минимальных денежных единицах.
	UnitPriceMinor int64
	CreatedAt      time.Time
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	ID int64
	// CustomerID — внешняя ссылка на клиента.
	CustomerID int64
	// Number — глобально уникальный бизнес-номер заказа.
	Number int64
	Status OrderStatus
	// PaymentStatus отслеживает оплату независимо от стадии кухни.
	PaymentStatus PaymentStatus
	// PaymentID — опциональная ссылка на транзакцию платёжного шлюза.
	PaymentID string
	// Observation — опциональный комментарий клиента.
	Observation string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.Number <= 0 {
		errs = append(errs, ErrNumberRequired)
	}
	if o.Status == "" {
		errs = append(errs, ErrOrderStatusInvalid)
	}
	if o.PaymentStatus == "" {
		errs = append(errs, ErrPaymentStatusInvalid)
	}
	if len(o.PaymentID) > MaxPaymentIDLen {
		errs = append(errs, ErrPaymentIDTooLong)
	}
	if len(o.Observation) > MaxObservationLen {
		errs = append(errs, ErrObservationTooLong)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	for _, item := range o.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			errs = append(errs, ErrItemNameRequired)
		}
		if len(item.ProductName) > MaxProductNameLen {
			errs = append(errs, ErrItemNameTooLong)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.UnitPriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}

	return errs
}
