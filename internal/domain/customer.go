package domain

import "time"

// Customer — клиент пастеларии. Email уникален среди не удалённых записей.
type Customer struct {
	ID int64
	// Nome — полное имя клиента.
	Nome  string
	Email string
	// Nascimento — дата рождения в формате YYYY-MM-DD.
	Nascimento string
	// Адресные поля.
	Endereco    string
	Complemento string
	Bairro      string
	CEP         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// DeletedAt отмечает мягкое удаление; такие записи исключаются из активных выборок.
	DeletedAt *time.Time
}
