package domain

import "time"

// LineItem — одна позиция заказа: связь (order, product) с количеством.
// Поля Nome/Preco/Foto — денормализованная копия товара на момент привязки,
// чтобы история заказа переживала жёсткое удаление товара из каталога.
type LineItem struct {
	OrderID   int64
	ProductID int64
	// Quantity — целое количество, всегда >= 1.
	Quantity int
	// Снапшот товара на момент записи позиции.
	Nome      string
	Preco     float64
	Foto      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order агрегирует заказ и его позиции. У заказа не больше одной позиции
// на товар: повторная привязка того же товара перезаписывает количество.
type Order struct {
	ID         int64
	CustomerID int64
	Items      []LineItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
	// DeletedAt отмечает мягкое удаление заказа.
	DeletedAt *time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	for _, item := range o.Items {
		if item.ProductID <= 0 {
			errs = append(errs, ErrItemProductRequired)
		}
		if item.Quantity < 1 {
			errs = append(errs, ErrItemQuantityInvalid)
		}
	}

	return errs
}

// Total считает сумму заказа по снапшотам позиций: preco * quantity.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Preco * float64(item.Quantity)
	}
	return total
}
