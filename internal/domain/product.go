package domain

import "time"

// Product — позиция каталога. Удаляется жёстко: строка физически исчезает,
// история заказов сохраняется за счёт снапшота в LineItem.
type Product struct {
	ID   int64
	Nome string
	// Preco — цена в реалах, NUMERIC(10,2) в хранилище.
	Preco     float64
	Foto      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
