package domain

import (
	"strings"
	"time"
)

// Category описывает раздел меню, к которому относится товар.
type Category string

const (
	// CategorySandwich — бургеры и сэндвичи.
	CategorySandwich Category = "sandwich"
	// CategorySide — гарниры и закуски.
	CategorySide Category = "side"
	// CategoryDrink — напитки.
	CategoryDrink Category = "drink"
	// CategoryDessert — десерты.
	CategoryDessert Category = "dessert"
)

// Categories перечисляет все разделы каталога в фиксированном порядке.
func Categories() []Category {
	return []Category{CategorySandwich, CategorySide, CategoryDrink, CategoryDessert}
}

// ParseCategory разбирает строковое представление раздела каталога.
func ParseCategory(raw string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategorySandwich:
		return CategorySandwich, nil
	case CategorySide:
		return CategorySide, nil
	case CategoryDrink:
		return CategoryDrink, nil
	case CategoryDessert:
		return CategoryDessert, nil
	default:
		return "", ErrCategoryInvalid
	}
}

// Ограничения на длину текстовых полей каталога.
const (
	MaxNameLen        = 200
	MaxDescriptionLen = 500
	MaxImageURLLen    = 500
)

// Product — позиция каталога меню.
type Product struct {
	ID int64
	// Name — отображаемое название товара.
	Name string
	// PriceMinor — цена в минимальных денежных единицах (центах).
	PriceMinor int64
	Category   Category
	// Description — опциональное описание для витрины.
	Description string
	// Active управляет видимостью товара в каталоге.
	Active bool
	// ImageURL — опциональная ссылка на изображение.
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет бизнес-правила товара и возвращает список замечаний.
// Порядок проверок фиксирован: цена раньше названия.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.PriceMinor < 0 {
		errs = append(errs, ErrPriceNegative)
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if len(p.Name) > MaxNameLen {
		errs = append(errs, ErrNameTooLong)
	}
	if len(p.Description) > MaxDescriptionLen {
		errs = append(errs, ErrDescriptionTooLong)
	}
	if len(p.ImageURL) > MaxImageURLLen {
		errs = append(errs, ErrImageURLTooLong)
	}

	return errs
}
