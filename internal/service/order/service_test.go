package order_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
	"github.com/vladislavdragonenkov/fastfood/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fastfood/internal/service/order"
	"github.com/vladislavdragonenkov/fastfood/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

type stubPublisher struct {
	mu     sync.Mutex
	events []kafka.EventType
	fail   bool
}

func (p *stubPublisher) PublishEvent(_ string, _ string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	if e, ok := event.(kafka.OrderEvent); ok {
		p.events = append(p.events, e.EventType)
	}
	return nil
}

func (p *stubPublisher) published() []kafka.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]kafka.EventType, len(p.events))
	copy(result, p.events)
	return result
}

func newService(t *testing.T, opts ...order.Option) *order.Service {
	t.Helper()
	return order.NewService(memory.NewOrderRepository(), loggerForTests(), opts...)
}

func validCreateInput(number int64) order.CreateInput {
	return order.CreateInput{
		CustomerID:  7,
		Number:      number,
		Observation: "no onions",
		Items: []order.ItemInput{
			{ProductID: 1, ProductName: "X-Bacon", Quantity: 2, UnitPriceMinor: 2990},
			{ProductID: 3, ProductName: "Fries", Quantity: 1, UnitPriceMinor: 990},
		},
	}
}

func TestCreate_AssignsDefaultsAndIDs(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)
	require.Greater(t, created.ID, int64(0))
	require.Equal(t, domain.OrderStatusReceived, created.Status)
	require.Equal(t, domain.PaymentStatusPending, created.PaymentStatus)
	require.False(t, created.CreatedAt.IsZero())
	require.Len(t, created.Items, 2)
	for _, item := range created.Items {
		require.Greater(t, item.ID, int64(0))
		require.Equal(t, created.ID, item.OrderID)
		require.False(t, item.CreatedAt.IsZero())
	}
}

func TestCreate_RejectsEmptyItems(t *testing.T) {
	svc := newService(t)

	input := validCreateInput(1001)
	input.Items = nil

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrItemsRequired)
}

func TestCreate_RejectsNonPositiveQuantity(t *testing.T) {
	svc := newService(t)

	input := validCreateInput(1001)
	input.Items[0].Quantity = 0

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrItemQtyInvalid)
}

func TestCreate_RejectsMissingCustomer(t *testing.T) {
	svc := newService(t)

	input := validCreateInput(1001)
	input.CustomerID = 0

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrCustomerRequired)
}

func TestCreate_DuplicateNumberIsConflict(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateInput(1001))
	require.ErrorIs(t, err, domain.ErrOrderNumberConflict)
	require.True(t, domain.IsConflict(err))
}

func TestGetByID_MissingReturnsNilWithoutError(t *testing.T) {
	svc := newService(t)

	got, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetByStatus_Filters(t *testing.T) {
	svc := newService(t)

	first, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validCreateInput(1002))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), first.ID, order.UpdateInput{
		Status:        domain.OrderStatusReady,
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentID:     "pay-1",
	})
	require.NoError(t, err)

	ready, err := svc.GetByStatus(context.Background(), domain.OrderStatusReady)
	require.NoError(t, err)
	require.Len(t, ready, 1)
	require.Equal(t, first.ID, ready[0].ID)

	finalized, err := svc.GetByStatus(context.Background(), domain.OrderStatusFinalized)
	require.NoError(t, err)
	require.NotNil(t, finalized)
	require.Empty(t, finalized)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.Update(context.Background(), 42, order.UpdateInput{
		Status:        domain.OrderStatusReady,
		PaymentStatus: domain.PaymentStatusPaid,
	})
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	require.Contains(t, err.Error(), "42")
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, order.UpdateInput{
		Status:        domain.OrderStatus("shipped"),
		PaymentStatus: domain.PaymentStatusPaid,
	})
	require.ErrorIs(t, err, domain.ErrOrderStatusInvalid)

	_, err = svc.Update(context.Background(), created.ID, order.UpdateInput{
		Status:        domain.OrderStatusReady,
		PaymentStatus: domain.PaymentStatus("chargeback"),
	})
	require.ErrorIs(t, err, domain.ErrPaymentStatusInvalid)
}

// Таблицы переходов нет: любой известный статус заменяет любой другой,
// включая движение назад.
func TestUpdate_AllowsAnyStatusTransition(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, order.UpdateInput{
		Status:        domain.OrderStatusFinalized,
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentID:     "pay-9",
	})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusFinalized, updated.Status)

	reverted, err := svc.Update(context.Background(), created.ID, order.UpdateInput{
		Status:        domain.OrderStatusReceived,
		PaymentStatus: domain.PaymentStatusRefused,
	})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusReceived, reverted.Status)
	require.Equal(t, domain.PaymentStatusRefused, reverted.PaymentStatus)
}

func TestUpdate_PreservesNumberAndItems(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, order.UpdateInput{
		Status:        domain.OrderStatusInPreparation,
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentID:     "pay-1",
		Observation:   "extra cheese",
	})
	require.NoError(t, err)
	require.Equal(t, created.Number, updated.Number)
	require.Len(t, updated.Items, len(created.Items))
	require.Equal(t, "extra cheese", updated.Observation)
	require.Equal(t, "pay-1", updated.PaymentID)
}

func TestDelete_CascadesAndReportsExistence(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	deleted, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestLifecycle_PublishesOrderEvents(t *testing.T) {
	publisher := &stubPublisher{}
	svc := newService(t, order.WithEvents(publisher))

	created, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, order.UpdateInput{
		Status:        domain.OrderStatusReady,
		PaymentStatus: domain.PaymentStatusPaid,
	})
	require.NoError(t, err)

	// Обновление без смены статуса события не публикует.
	_, err = svc.Update(context.Background(), created.ID, order.UpdateInput{
		Status:        domain.OrderStatusReady,
		PaymentStatus: domain.PaymentStatusPaid,
		Observation:   "call on arrival",
	})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	require.Equal(t, []kafka.EventType{
		kafka.EventTypeOrderCreated,
		kafka.EventTypeOrderStatusChanged,
		kafka.EventTypeOrderDeleted,
	}, publisher.published())
}

func TestCreate_SurvivesEventPublisherFailure(t *testing.T) {
	publisher := &stubPublisher{fail: true}
	svc := newService(t, order.WithEvents(publisher))

	created, err := svc.Create(context.Background(), validCreateInput(1001))
	require.NoError(t, err)
	require.Greater(t, created.ID, int64(0))
}
