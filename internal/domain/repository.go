package domain

// CustomerRepository описывает требования к хранилищу клиентов.
// Все операции видят только не удалённые записи.
type CustomerRepository interface {
	// Create сохраняет нового клиента. Возвращает ErrEmailTaken при конфликте email.
	Create(customer Customer) (Customer, error)
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(id int64) (Customer, error)
	// List возвращает страницу клиентов согласно параметрам сортировки.
	List(params ListParams) (PagedResult[Customer], error)
	// Update применяет изменения к клиенту. Возвращает ErrCustomerNotFound либо ErrEmailTaken.
	Update(customer Customer) (Customer, error)
	// SoftDelete помечает клиента удалённым, строка сохраняется.
	SoftDelete(id int64) error
	// Exists сообщает, существует ли живой клиент с таким id.
	Exists(id int64) (bool, error)
	// EmailTaken проверяет занятость email среди живых клиентов, исключая excludeID.
	EmailTaken(email string, excludeID int64) (bool, error)
}

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	Create(product Product) (Product, error)
	// Get возвращает товар или ErrProductNotFound.
	Get(id int64) (Product, error)
	List(params ListParams) (PagedResult[Product], error)
	Update(product Product) (Product, error)
	// Delete удаляет товар жёстко: строка физически удаляется.
	Delete(id int64) error
	Exists(id int64) (bool, error)
}

// OrderRepository описывает read/delete-операции над заказами.
// Мутации заказа и его позиций идут только через OrderUnitOfWork.
type OrderRepository interface {
	// Get возвращает заказ с позициями или ErrOrderNotFound.
	Get(id int64) (Order, error)
	// List возвращает страницу заказов, каждый с его позициями.
	List(params ListParams) (PagedResult[Order], error)
	// SoftDelete помечает заказ удалённым; позиции остаются нетронутыми.
	SoftDelete(id int64) error
	// ForceDelete отвязывает все позиции и физически удаляет заказ.
	ForceDelete(id int64) error
}
