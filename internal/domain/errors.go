package domain

import "errors"

var (
	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNumberConflict сигнализирует о повторном использовании бизнес-номера заказа.
	ErrOrderNumberConflict = errors.New("order number already exists")

	// Ошибка отрицательной цены товара.
	ErrPriceNegative = errors.New("price may not be negative")
	// Ошибка пустого названия товара.
	ErrNameRequired = errors.New("name is required")
	// Ошибка превышения длины названия товара.
	ErrNameTooLong = errors.New("name exceeds 200 characters")
	// Ошибка превышения длины описания товара.
	ErrDescriptionTooLong = errors.New("description exceeds 500 characters")
	// Ошибка превышения длины ссылки на изображение.
	ErrImageURLTooLong = errors.New("image_url exceeds 500 characters")
	// Ошибка неизвестного раздела каталога.
	ErrCategoryInvalid = errors.New("unknown product category")

	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id must be positive")
	// Ошибка отсутствующего бизнес-номера заказа.
	ErrNumberRequired = errors.New("order number must be positive")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item unit price must be non-negative")
	// Ошибка пустого названия товара в позиции заказа.
	ErrItemNameRequired = errors.New("item product name is required")
	// Ошибка превышения длины названия товара в позиции.
	ErrItemNameTooLong = errors.New("item product name exceeds 200 characters")
	// Ошибка превышения длины ссылки на платёж.
	ErrPaymentIDTooLong = errors.New("payment_id exceeds 100 characters")
	// Ошибка превышения длины комментария к заказу.
	ErrObservationTooLong = errors.New("observation exceeds 500 characters")
	// Ошибка неизвестного статуса заказа.
	ErrOrderStatusInvalid = errors.New("unknown order status")
	// Ошибка неизвестного статуса оплаты.
	ErrPaymentStatusInvalid = errors.New("unknown payment status")
)

// validationErrors перечисляет все ошибки бизнес-валидации.
// Список используется на границах для маппинга в коды ответов.
var validationErrors = []error{
	ErrPriceNegative,
	ErrNameRequired,
	ErrNameTooLong,
	ErrDescriptionTooLong,
	ErrImageURLTooLong,
	ErrCategoryInvalid,
	ErrCustomerRequired,
	ErrNumberRequired,
	ErrItemsRequired,
	ErrItemQtyInvalid,
	ErrItemPriceInvalid,
	ErrItemNameRequired,
	ErrItemNameTooLong,
	ErrPaymentIDTooLong,
	ErrObservationTooLong,
	ErrOrderStatusInvalid,
	ErrPaymentStatusInvalid,
}

// IsNotFound проверяет, является ли ошибка отсутствием сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrOrderNotFound)
}

// IsConflict проверяет, является ли ошибка конфликтом уникальности.
func IsConflict(err error) bool {
	return errors.Is(err, ErrOrderNumberConflict)
}

// IsValidation проверяет, относится ли ошибка к нарушению бизнес-правил.
func IsValidation(err error) bool {
	for _, candidate := range validationErrors {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
