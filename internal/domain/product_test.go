package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
)

func makeProduct() domain.Product {
	now := time.Now().UTC()
	return domain.Product{
		ID:          1,
		Name:        "X-Bacon",
		PriceMinor:  2990,
		Category:    domain.CategorySandwich,
		Description: "Bacon burger",
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProductValidateInvariants_Ok(t *testing.T) {
	product := makeProduct()
	if errs := product.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestProductValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(p *domain.Product)
		want error
	}{
		{
			name: "negative price",
			mut: func(p *domain.Product) {
				p.PriceMinor = -1
			},
			want: domain.ErrPriceNegative,
		},
		{
			name: "blank name",
			mut: func(p *domain.Product) {
				p.Name = "   "
			},
			want: domain.ErrNameRequired,
		},
		{
			name: "name too long",
			mut: func(p *domain.Product) {
				p.Name = strings.Repeat("x", domain.MaxNameLen+1)
			},
			want: domain.ErrNameTooLong,
		},
		{
			name: "description too long",
			mut: func(p *domain.Product) {
				p.Description = strings.Repeat("x", domain.MaxDescriptionLen+1)
			},
			want: domain.ErrDescriptionTooLong,
		},
		{
			name: "image url too long",
			mut: func(p *domain.Product) {
				p.ImageURL = strings.Repeat("x", domain.MaxImageURLLen+1)
			},
			want: domain.ErrImageURLTooLong,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := makeProduct()
			tc.mut(&product)

			errs := product.ValidateInvariants()
			if len(errs) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
			found := false
			for _, err := range errs {
				if err == tc.want {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("expected %v among %v", tc.want, errs)
			}
		})
	}
}

// Порядок проверок значим: цена раньше названия.
func TestProductValidateInvariants_PriceCheckedBeforeName(t *testing.T) {
	product := makeProduct()
	product.PriceMinor = -10
	product.Name = ""

	errs := product.ValidateInvariants()
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 validation errors, got %v", errs)
	}
	if errs[0] != domain.ErrPriceNegative {
		t.Fatalf("expected price error first, got %v", errs[0])
	}
	if errs[1] != domain.ErrNameRequired {
		t.Fatalf("expected name error second, got %v", errs[1])
	}
}

func TestParseCategory(t *testing.T) {
	for _, category := range domain.Categories() {
		parsed, err := domain.ParseCategory(strings.ToUpper(string(category)))
		if err != nil {
			t.Fatalf("parse %s failed: %v", category, err)
		}
		if parsed != category {
			t.Fatalf("expected %s, got %s", category, parsed)
		}
	}

	if _, err := domain.ParseCategory("pizza"); err != domain.ErrCategoryInvalid {
		t.Fatalf("expected ErrCategoryInvalid, got %v", err)
	}
}

func TestErrorClassifiers(t *testing.T) {
	if !domain.IsNotFound(domain.ErrProductNotFound) || !domain.IsNotFound(domain.ErrOrderNotFound) {
		t.Fatal("expected not-found classification")
	}
	if !domain.IsConflict(domain.ErrOrderNumberConflict) {
		t.Fatal("expected conflict classification")
	}
	if !domain.IsValidation(domain.ErrPriceNegative) || !domain.IsValidation(domain.ErrItemQtyInvalid) {
		t.Fatal("expected validation classification")
	}
	if domain.IsValidation(domain.ErrOrderNotFound) || domain.IsConflict(domain.ErrPriceNegative) {
		t.Fatal("unexpected cross-classification")
	}
}
