package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Product
	nextID int64
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[int64]domain.Product),
	}
}

// GetByID возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) GetByID(id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetAll возвращает товары, отсортированные по ID.
func (r *productRepositoryInMemory) GetAll() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(domain.Product) bool { return true }), nil
}

// GetByCategory возвращает товары указанного раздела.
func (r *productRepositoryInMemory) GetByCategory(category domain.Category) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(p domain.Product) bool { return p.Category == category }), nil
}

// GetActive возвращает только видимые товары.
func (r *productRepositoryInMemory) GetActive() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(p domain.Product) bool { return p.Active }), nil
}

// Add сохраняет товар и присваивает суррогатный идентификатор.
func (r *productRepositoryInMemory) Add(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	r.items[product.ID] = product
	return product, nil
}

// Update перезаписывает товар, если он существует.
func (r *productRepositoryInMemory) Update(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	r.items[product.ID] = product
	return product, nil
}

// Delete удаляет товар; false без ошибки, если записи не было.
func (r *productRepositoryInMemory) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// Count возвращает количество товаров каталога.
func (r *productRepositoryInMemory) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.items)), nil
}

// collect собирает товары по предикату; вызывается под блокировкой.
func (r *productRepositoryInMemory) collect(keep func(domain.Product) bool) []domain.Product {
	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		if keep(product) {
			result = append(result, product)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
