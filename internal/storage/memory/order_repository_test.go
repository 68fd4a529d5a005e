package memory_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/storage/memory"
)

func newOrder(number int64) domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		CustomerID:    42,
		Number:        number,
		Status:        domain.OrderStatusReceived,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items: []domain.OrderItem{
			{ProductID: 1, ProductName: "X-Bacon", Quantity: 2, UnitPriceMinor: 2990, CreatedAt: now},
			{ProductID: 7, ProductName: "Fries", Quantity: 1, UnitPriceMinor: 990, CreatedAt: now},
		},
	}
}

func TestOrderRepository_AddGet(t *testing.T) {
	repo := memory.NewOrderRepository()

	created, err := repo.Add(newOrder(1001))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("expected generated id, got %d", created.ID)
	}
	for _, item := range created.Items {
		if item.ID <= 0 {
			t.Fatalf("expected generated item id, got %d", item.ID)
		}
		if item.OrderID != created.ID {
			t.Fatalf("expected item bound to order %d, got %d", created.ID, item.OrderID)
		}
	}

	stored, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Number != 1001 || len(stored.Items) != 2 {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
}

func TestOrderRepository_AddNumberConflict(t *testing.T) {
	repo := memory.NewOrderRepository()
	if _, err := repo.Add(newOrder(1001)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := repo.Add(newOrder(1001)); err != domain.ErrOrderNumberConflict {
		t.Fatalf("expected ErrOrderNumberConflict, got %v", err)
	}
}

func TestOrderRepository_GetByStatus(t *testing.T) {
	repo := memory.NewOrderRepository()
	first, err := repo.Add(newOrder(1001))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := repo.Add(newOrder(1002)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	first.Status = domain.OrderStatusReady
	if _, err := repo.Update(first); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	ready, err := repo.GetByStatus(domain.OrderStatusReady)
	if err != nil {
		t.Fatalf("get by status failed: %v", err)
	}
	if len(ready) != 1 || ready[0].ID != first.ID {
		t.Fatalf("expected only the ready order, got %v", ready)
	}

	finalized, err := repo.GetByStatus(domain.OrderStatusFinalized)
	if err != nil {
		t.Fatalf("get by status failed: %v", err)
	}
	if finalized == nil || len(finalized) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", finalized)
	}
}

func TestOrderRepository_UpdateKeepsItemsAndNumber(t *testing.T) {
	repo := memory.NewOrderRepository()
	created, err := repo.Add(newOrder(1001))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	created.Status = domain.OrderStatusInPreparation
	created.PaymentStatus = domain.PaymentStatusPaid
	created.PaymentID = "gw-123"
	created.Number = 9999
	created.Items = nil

	updated, err := repo.Update(created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.OrderStatusInPreparation || updated.PaymentStatus != domain.PaymentStatusPaid {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Number != 1001 {
		t.Fatalf("order number must be immutable, got %d", updated.Number)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("items must survive update, got %d", len(updated.Items))
	}
}

func TestOrderRepository_UpdateNotFound(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder(1001)
	order.ID = 77

	if _, err := repo.Update(order); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_DeleteCascades(t *testing.T) {
	repo := memory.NewOrderRepository()
	created, err := repo.Add(newOrder(1001))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	deleted, err := repo.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report true")
	}

	if _, err := repo.GetByID(created.ID); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound after delete, got %v", err)
	}

	items, err := repo.ItemsByOrder(created.ID)
	if err != nil {
		t.Fatalf("items by order failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no orphaned items, got %d", len(items))
	}

	// Номер освобождается после удаления заказа.
	if _, err := repo.Add(newOrder(1001)); err != nil {
		t.Fatalf("expected number to be reusable after delete, got %v", err)
	}
}

func TestOrderRepository_DeleteMissing(t *testing.T) {
	repo := memory.NewOrderRepository()

	deleted, err := repo.Delete(5)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted {
		t.Fatal("expected delete of missing id to report false")
	}
}

func TestOrderRepository_CloneIsolation(t *testing.T) {
	repo := memory.NewOrderRepository()
	created, err := repo.Add(newOrder(1001))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Мутация возвращённого среза не должна затрагивать хранилище.
	created.Items[0].Quantity = 99

	stored, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Items[0].Quantity == 99 {
		t.Fatal("repository state leaked through returned slice")
	}
}
