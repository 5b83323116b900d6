package domain

import "context"

// OrderTx — набор операций, доступных внутри одной открытой транзакции заказа.
// Реализация привязана к конкретному транзакционному дескриптору хранилища.
type OrderTx interface {
	// InsertOrder создаёт строку заказа и возвращает её идентификатор.
	InsertOrder(customerID int64) (int64, error)
	// UpdateOrderCustomer меняет владельца существующего заказа.
	UpdateOrderCustomer(orderID, customerID int64) error
	// DetachItems безусловно удаляет все позиции заказа (full-replace семантика).
	DetachItems(orderID int64) error
	// FindProduct повторно проверяет существование товара уже внутри транзакции,
	// удерживая блокировку строки до коммита. Возвращает ErrProductNotFound.
	FindProduct(productID int64) (Product, error)
	// AttachItem записывает позицию со снапшотом товара; повторная привязка
	// того же товара перезаписывает количество, а не дублирует строку.
	AttachItem(orderID int64, product Product, quantity int) error
}

// OrderUnitOfWork выдаёт транзакционную область для мутаций заказа.
// Возврат ошибки из fn, как и паника, гарантированно откатывает все записи.
type OrderUnitOfWork interface {
	Within(ctx context.Context, fn func(tx OrderTx) error) error
}

// Notifier уведомляет клиента об оформленном заказе. Вызывается строго после
// коммита; ошибка доставки не влияет ни на заказ, ни на HTTP-ответ.
type Notifier interface {
	OrderPlaced(order Order, email string) error
}
