package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего идентификатора клиента в заказе.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one line item")
	// Ошибка при некорректном количестве в позиции (< 1).
	ErrItemQuantityInvalid = errors.New("line item quantity must be at least 1")
	// Ошибка отсутствующего идентификатора товара в позиции.
	ErrItemProductRequired = errors.New("line item product id is required")
	// ErrCustomerNotFound возвращается, если клиент не найден или мягко удалён.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товар не найден в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден или мягко удалён.
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmailTaken сигнализирует о конфликте уникальности email среди живых клиентов.
	ErrEmailTaken = errors.New("customer email already registered")
)

// OrderTxError — фатальная ошибка, обнаруженная внутри открытой транзакции
// заказа. Несёт готовое сообщение контракта с идентификатором первого
// проблемного товара; любые записи транзакции к этому моменту откатываются.
type OrderTxError struct {
	ProductID int64
	Message   string
}

func (e *OrderTxError) Error() string { return e.Message }

// NewProductMissingError — товар исчез между валидацией и записью позиции.
func NewProductMissingError(productID int64) *OrderTxError {
	return &OrderTxError{
		ProductID: productID,
		Message:   fmt.Sprintf("Produto com ID %d não encontrado.", productID),
	}
}

// NewQuantityMissingError — у позиции не указано количество.
func NewQuantityMissingError(productID int64) *OrderTxError {
	return &OrderTxError{
		ProductID: productID,
		Message:   fmt.Sprintf("Quantidade não fornecida para o produto com ID %d.", productID),
	}
}

// IsOrderTxError проверяет, является ли ошибка клиентской ошибкой транзакции заказа.
func IsOrderTxError(err error) bool {
	var txErr *OrderTxError
	return errors.As(err, &txErr)
}
