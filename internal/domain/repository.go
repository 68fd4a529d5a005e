package domain

// ProductRepository описывает требования к хранилищу каталога.
// Таймауты и отмена живут внутри адаптера хранилища.
type ProductRepository interface {
	// GetByID возвращает товар по идентификатору или ErrProductNotFound.
	GetByID(id int64) (Product, error)
	// GetAll возвращает все товары каталога.
	GetAll() ([]Product, error)
	// GetByCategory возвращает товары указанного раздела.
	GetByCategory(category Category) ([]Product, error)
	// GetActive возвращает только видимые в каталоге товары.
	GetActive() ([]Product, error)
	// Add сохраняет новый товар и возвращает его с присвоенным ID.
	Add(product Product) (Product, error)
	// Update перезаписывает товар или возвращает ErrProductNotFound.
	Update(product Product) (Product, error)
	// Delete удаляет товар; false без ошибки, если записи не было.
	Delete(id int64) (bool, error)
	// Count возвращает количество товаров в каталоге.
	Count() (int64, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// GetByID возвращает заказ с позициями или ErrOrderNotFound.
	GetByID(id int64) (Order, error)
	// GetAll возвращает все заказы с позициями.
	GetAll() ([]Order, error)
	// GetByStatus возвращает заказы в указанном статусе.
	GetByStatus(status OrderStatus) ([]Order, error)
	// Add сохраняет новый заказ вместе с позициями.
	// Возвращает ErrOrderNumberConflict, если бизнес-номер уже занят.
	Add(order Order) (Order, error)
	// Update перезаписывает поля заказа или возвращает ErrOrderNotFound.
	// Позиции заказа не изменяются после создания.
	Update(order Order) (Order, error)
	// Delete удаляет заказ вместе с позициями; false без ошибки, если записи не было.
	Delete(id int64) (bool, error)
	// ItemsByOrder возвращает позиции заказа (пустой срез, если заказа нет).
	ItemsByOrder(orderID int64) ([]OrderItem, error)
}
