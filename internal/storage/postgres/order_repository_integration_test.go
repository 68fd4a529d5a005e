package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
)

func sampleOrder(number int64) domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Order{
		CustomerID:    42,
		Number:        number,
		Status:        domain.OrderStatusReceived,
		PaymentStatus: domain.PaymentStatusPending,
		Observation:   "no onions",
		CreatedAt:     now,
		UpdatedAt:     now,
		Items: []domain.OrderItem{
			{ProductID: 1, ProductName: "X-Bacon", Quantity: 2, UnitPriceMinor: 2990, CreatedAt: now},
			{ProductID: 7, ProductName: "Fries", Quantity: 1, UnitPriceMinor: 990, CreatedAt: now},
		},
	}
}

func TestOrderRepositoryIntegration_AddGet(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	created, err := repo.Add(sampleOrder(1001))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("expected generated id, got %d", created.ID)
	}
	for _, item := range created.Items {
		if item.ID <= 0 || item.OrderID != created.ID {
			t.Fatalf("item not bound to order: %+v", item)
		}
	}

	stored, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Number != 1001 || stored.Status != domain.OrderStatusReceived {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}
}

func TestOrderRepositoryIntegration_NumberConflict(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	if _, err := repo.Add(sampleOrder(1001)); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := repo.Add(sampleOrder(1001)); !errors.Is(err, domain.ErrOrderNumberConflict) {
		t.Fatalf("expected ErrOrderNumberConflict, got %v", err)
	}
}

func TestOrderRepositoryIntegration_GetByStatus(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	first, err := repo.Add(sampleOrder(1001))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.Add(sampleOrder(1002)); err != nil {
		t.Fatalf("add: %v", err)
	}

	first.Status = domain.OrderStatusReady
	first.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if _, err := repo.Update(first); err != nil {
		t.Fatalf("update: %v", err)
	}

	ready, err := repo.GetByStatus(domain.OrderStatusReady)
	if err != nil {
		t.Fatalf("get by status: %v", err)
	}
	if len(ready) != 1 || ready[0].ID != first.ID {
		t.Fatalf("expected only the ready order, got %+v", ready)
	}
	if len(ready[0].Items) != 2 {
		t.Fatalf("expected items loaded, got %d", len(ready[0].Items))
	}
}

func TestOrderRepositoryIntegration_UpdateNotFound(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	order := sampleOrder(1001)
	order.ID = 424242
	if _, err := repo.Update(order); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepositoryIntegration_DeleteCascades(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	created, err := repo.Add(sampleOrder(1001))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	deleted, err := repo.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report true")
	}

	if _, err := repo.GetByID(created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	// Каскад: позиции удалённого заказа исчезают в той же операции.
	items, err := repo.ItemsByOrder(created.ID)
	if err != nil {
		t.Fatalf("items by order: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no orphaned items, got %d", len(items))
	}

	deleted, err = repo.Delete(created.ID)
	if err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if deleted {
		t.Fatal("expected delete of missing id to report false")
	}
}
