package orders

import (
	"errors"
	"fmt"
	"math"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

// Сообщения контракта валидации заказа. Тексты фиксированы и отдаются клиенту как есть.
const (
	msgCustomerIDRequired = "O campo customer_id é obrigatório."
	msgCustomerMissing    = "O customer_id informado não existe."
	msgProductsRequired   = "O campo products é obrigatório."
	msgProductsArray      = "O campo products deve ser um array."
	msgProductIDRequired  = "O campo id do produto é obrigatório."
	msgProductMissing     = "O produto informado não existe."
	msgQuantityRequired   = "O campo quantidade do produto é obrigatório."
	msgQuantityInteger    = "O campo quantidade do produto deve ser um número inteiro."
	msgQuantityMin        = "O campo quantidade do produto deve ser no mínimo 1."
)

// OrderPayload — сырое тело запроса создания/замены заказа до нормализации.
// Поля опциональны: отсутствие и некорректный тип различаются флагами,
// которые выставляет декодер HTTP-слоя.
type OrderPayload struct {
	CustomerID      *int64
	Products        []ItemPayload
	ProductsPresent bool
	// ProductsInvalid — поле products присутствует, но не является массивом.
	ProductsInvalid bool
}

// ItemPayload — сырая позиция заказа из тела запроса.
type ItemPayload struct {
	ID       *int64
	Quantity *float64
	// QuantityInvalid — quantity присутствует, но не является числом.
	QuantityInvalid bool
}

// ValidationErrors — карта нарушений по ключам полей в нотации
// customer_id / products / products.N.id / products.N.quantity.
// Собираются ВСЕ нарушения, а не только первое.
type ValidationErrors map[string][]string

func (e ValidationErrors) Error() string {
	return fmt.Sprintf("order payload validation failed: %d field(s)", len(e))
}

func (e ValidationErrors) add(field, message string) {
	e[field] = append(e[field], message)
}

// AsValidationErrors извлекает карту нарушений из цепочки ошибок.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// Validator нормализует сырое тело заказа в PlaceOrderInput.
// Проверки существования читают хранилище, но ничего не изменяют.
type Validator struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
}

// NewValidator создаёт валидатор заказов поверх репозиториев.
func NewValidator(customers domain.CustomerRepository, products domain.ProductRepository) *Validator {
	return &Validator{customers: customers, products: products}
}

// Validate проверяет тело заказа и возвращает нормализованный ввод либо
// ValidationErrors со всеми нарушениями. Ошибка хранилища возвращается как есть.
func (v *Validator) Validate(payload OrderPayload) (PlaceOrderInput, error) {
	verrs := ValidationErrors{}

	if payload.CustomerID == nil {
		verrs.add("customer_id", msgCustomerIDRequired)
	} else {
		ok, err := v.customers.Exists(*payload.CustomerID)
		if err != nil {
			return PlaceOrderInput{}, fmt.Errorf("check customer existence: %w", err)
		}
		if !ok {
			verrs.add("customer_id", msgCustomerMissing)
		}
	}

	switch {
	case payload.ProductsInvalid:
		verrs.add("products", msgProductsArray)
	case !payload.ProductsPresent || len(payload.Products) == 0:
		verrs.add("products", msgProductsRequired)
	}

	var items []InputItem
	if !payload.ProductsInvalid {
		items = make([]InputItem, 0, len(payload.Products))
		for i, item := range payload.Products {
			idKey := fmt.Sprintf("products.%d.id", i)
			qtyKey := fmt.Sprintf("products.%d.quantity", i)

			var productID int64
			if item.ID == nil {
				verrs.add(idKey, msgProductIDRequired)
			} else {
				productID = *item.ID
				ok, err := v.products.Exists(productID)
				if err != nil {
					return PlaceOrderInput{}, fmt.Errorf("check product existence: %w", err)
				}
				if !ok {
					verrs.add(idKey, msgProductMissing)
				}
			}

			var quantity *int
			switch {
			case item.QuantityInvalid:
				verrs.add(qtyKey, msgQuantityInteger)
			case item.Quantity == nil:
				verrs.add(qtyKey, msgQuantityRequired)
			case *item.Quantity != math.Trunc(*item.Quantity):
				verrs.add(qtyKey, msgQuantityInteger)
			case *item.Quantity > math.MaxInt32 || *item.Quantity < math.MinInt32:
				verrs.add(qtyKey, msgQuantityInteger)
			case int(*item.Quantity) < 1:
				verrs.add(qtyKey, msgQuantityMin)
			default:
				q := int(*item.Quantity)
				quantity = &q
			}

			items = append(items, InputItem{ProductID: productID, Quantity: quantity})
		}
	}

	if len(verrs) > 0 {
		return PlaceOrderInput{}, verrs
	}

	return PlaceOrderInput{
		CustomerID: *payload.CustomerID,
		Items:      items,
	}, nil
}
