package seed

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/storage/memory"
)

func TestRun_PopulatesEmptyCatalog(t *testing.T) {
	repo := memory.NewProductRepository()
	seeder := NewSeeder(repo, nil)

	result := seeder.Run()
	if result.Skipped {
		t.Fatal("seed of empty catalog must not be skipped")
	}
	if result.Seeded != 12 {
		t.Fatalf("Seeded = %d, want 12", result.Seeded)
	}
	if result.Failed != 0 {
		t.Fatalf("Failed = %d, want 0", result.Failed)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 12 {
		t.Fatalf("catalog size = %d, want 12", count)
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	names := make(map[string]bool, len(all))
	for _, p := range all {
		if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
			t.Fatalf("seeded product %q has zero timestamps: created=%v updated=%v", p.Name, p.CreatedAt, p.UpdatedAt)
		}
		if names[p.Name] {
			t.Fatalf("seeded product name %q is not unique", p.Name)
		}
		names[p.Name] = true
	}
}

func TestRun_ThreeProductsPerCategory(t *testing.T) {
	repo := memory.NewProductRepository()
	NewSeeder(repo, nil).Run()

	for _, category := range domain.Categories() {
		products, err := repo.GetByCategory(category)
		if err != nil {
			t.Fatalf("GetByCategory(%s): %v", category, err)
		}
		if len(products) != 3 {
			t.Fatalf("category %s has %d products, want 3", category, len(products))
		}
		for _, p := range products {
			if !p.Active {
				t.Fatalf("seeded product %q must be active", p.Name)
			}
			if p.PriceMinor <= 0 {
				t.Fatalf("seeded product %q has non-positive price %d", p.Name, p.PriceMinor)
			}
		}
	}
}

func TestRun_SecondRunIsNoOp(t *testing.T) {
	repo := memory.NewProductRepository()
	seeder := NewSeeder(repo, nil)

	seeder.Run()
	result := seeder.Run()
	if !result.Skipped {
		t.Fatal("second run must be skipped")
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 12 {
		t.Fatalf("catalog size after second run = %d, want 12", count)
	}
}

func TestRun_NonEmptyCatalogUntouched(t *testing.T) {
	repo := memory.NewProductRepository()
	existing, err := repo.Add(domain.Product{Name: "Custom Burger", PriceMinor: 1990, Category: domain.CategorySandwich, Active: true})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	result := NewSeeder(repo, nil).Run()
	if !result.Skipped {
		t.Fatal("run against non-empty catalog must be skipped")
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 || all[0].ID != existing.ID {
		t.Fatalf("catalog changed: %+v", all)
	}
}

type failingEveryOtherRepo struct {
	domain.ProductRepository
	calls int
}

func (r *failingEveryOtherRepo) Add(p domain.Product) (domain.Product, error) {
	r.calls++
	if r.calls%2 == 0 {
		return domain.Product{}, errors.New("write failed")
	}
	return r.ProductRepository.Add(p)
}

func TestRun_PartialFailureDoesNotAbort(t *testing.T) {
	repo := &failingEveryOtherRepo{ProductRepository: memory.NewProductRepository()}

	result := NewSeeder(repo, nil).Run()
	if result.Skipped {
		t.Fatal("run must not be skipped")
	}
	if result.Seeded != 6 {
		t.Fatalf("Seeded = %d, want 6", result.Seeded)
	}
	if result.Failed != 6 {
		t.Fatalf("Failed = %d, want 6", result.Failed)
	}
}
