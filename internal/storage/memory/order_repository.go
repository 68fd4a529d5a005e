package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
// Позиции хранятся внутри копии заказа; удаление заказа удаляет их атомарно.
type orderRepositoryInMemory struct {
	mu         sync.RWMutex
	items      map[int64]domain.Order
	numbers    map[int64]int64
	nextID     int64
	nextItemID int64
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items:   make(map[int64]domain.Order),
		numbers: make(map[int64]int64),
	}
}

// GetByID возвращает заказ с позициями или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) GetByID(id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// GetAll возвращает все заказы, отсортированные по ID.
func (r *orderRepositoryInMemory) GetAll() ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(domain.Order) bool { return true }), nil
}

// GetByStatus возвращает заказы в указанном статусе.
func (r *orderRepositoryInMemory) GetByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(o domain.Order) bool { return o.Status == status }), nil
}

// Add сохраняет заказ, присваивая идентификаторы заказу и позициям.
// Возвращает ErrOrderNumberConflict, если бизнес-номер уже занят.
func (r *orderRepositoryInMemory) Add(order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.numbers[order.Number]; taken {
		return domain.Order{}, domain.ErrOrderNumberConflict
	}

	r.nextID++
	order.ID = r.nextID

	items := make([]domain.OrderItem, len(order.Items))
	for i, item := range order.Items {
		r.nextItemID++
		item.ID = r.nextItemID
		item.OrderID = order.ID
		items[i] = item
	}
	order.Items = items

	r.items[order.ID] = cloneOrder(order)
	r.numbers[order.Number] = order.ID
	return order, nil
}

// Update перезаписывает поля заказа, оставляя позиции нетронутыми.
func (r *orderRepositoryInMemory) Update(order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[order.ID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	// Позиции и номер фиксируются при создании.
	order.Number = current.Number
	order.Items = current.Items
	order.CreatedAt = current.CreatedAt
	r.items[order.ID] = cloneOrder(order)
	return cloneOrder(order), nil
}

// Delete удаляет заказ вместе с позициями; false без ошибки, если записи не было.
func (r *orderRepositoryInMemory) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return false, nil
	}
	delete(r.items, id)
	delete(r.numbers, order.Number)
	return true, nil
}

// ItemsByOrder возвращает позиции заказа; пустой срез, если заказа нет.
func (r *orderRepositoryInMemory) ItemsByOrder(orderID int64) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[orderID]
	if !ok {
		return []domain.OrderItem{}, nil
	}
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	return items, nil
}

// collect собирает заказы по предикату; вызывается под блокировкой.
func (r *orderRepositoryInMemory) collect(keep func(domain.Order) bool) []domain.Order {
	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if keep(order) {
			result = append(result, cloneOrder(order))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// cloneOrder копирует заказ вместе со срезом позиций,
// чтобы избежать непредсказуемых мутаций извне.
func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
