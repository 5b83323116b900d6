package orders

import (
	"testing"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
	"github.com/vladislavdragonenkov/pastelaria/internal/storage/memory"
)

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func seedCatalog(t *testing.T) (domain.CustomerRepository, domain.ProductRepository, domain.Customer, []domain.Product) {
	t.Helper()

	customers := memory.NewCustomerRepository()
	customer, err := customers.Create(domain.Customer{
		Nome:        "Maria Silva",
		Email:       "maria@x.com",
		Nascimento:  "1985-05-20",
		Endereco:    "Rua A, 1",
		Complemento: "Casa",
		Bairro:      "Centro",
		CEP:         "11111-111",
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	products := memory.NewProductRepository()
	var created []domain.Product
	for _, p := range []domain.Product{
		{Nome: "Pastel de Carne", Preco: 10.0, Foto: "carne.jpg"},
		{Nome: "Pastel de Queijo", Preco: 8.0, Foto: "queijo.jpg"},
	} {
		stored, err := products.Create(p)
		if err != nil {
			t.Fatalf("seed product: %v", err)
		}
		created = append(created, stored)
	}

	return customers, products, customer, created
}

func TestValidator_NormalizesValidPayload(t *testing.T) {
	customers, products, customer, catalog := seedCatalog(t)
	v := NewValidator(customers, products)

	input, err := v.Validate(OrderPayload{
		CustomerID:      int64Ptr(customer.ID),
		ProductsPresent: true,
		Products: []ItemPayload{
			{ID: int64Ptr(catalog[0].ID), Quantity: float64Ptr(2)},
			{ID: int64Ptr(catalog[1].ID), Quantity: float64Ptr(1)},
		},
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if input.CustomerID != customer.ID {
		t.Fatalf("unexpected customer id: %d", input.CustomerID)
	}
	if len(input.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(input.Items))
	}
	if input.Items[0].Quantity == nil || *input.Items[0].Quantity != 2 {
		t.Fatalf("unexpected first quantity: %+v", input.Items[0].Quantity)
	}
}

func TestValidator_MissingEverything(t *testing.T) {
	customers, products, _, _ := seedCatalog(t)
	v := NewValidator(customers, products)

	_, err := v.Validate(OrderPayload{})
	verrs, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	assertFieldMessage(t, verrs, "customer_id", "O campo customer_id é obrigatório.")
	assertFieldMessage(t, verrs, "products", "O campo products é obrigatório.")
}

func TestValidator_UnknownCustomerAndProduct(t *testing.T) {
	customers, products, _, catalog := seedCatalog(t)
	v := NewValidator(customers, products)

	_, err := v.Validate(OrderPayload{
		CustomerID:      int64Ptr(9999),
		ProductsPresent: true,
		Products: []ItemPayload{
			{ID: int64Ptr(catalog[0].ID), Quantity: float64Ptr(1)},
			{ID: int64Ptr(8888), Quantity: float64Ptr(1)},
		},
	})
	verrs, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	assertFieldMessage(t, verrs, "customer_id", "O customer_id informado não existe.")
	assertFieldMessage(t, verrs, "products.1.id", "O produto informado não existe.")
	if _, present := verrs["products.0.id"]; present {
		t.Fatalf("existing product must not be flagged: %v", verrs)
	}
}

func TestValidator_ProductsNotArray(t *testing.T) {
	customers, products, customer, _ := seedCatalog(t)
	v := NewValidator(customers, products)

	_, err := v.Validate(OrderPayload{
		CustomerID:      int64Ptr(customer.ID),
		ProductsPresent: true,
		ProductsInvalid: true,
	})
	verrs, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	assertFieldMessage(t, verrs, "products", "O campo products deve ser um array.")
}

func TestValidator_QuantityViolations(t *testing.T) {
	customers, products, customer, catalog := seedCatalog(t)
	v := NewValidator(customers, products)

	_, err := v.Validate(OrderPayload{
		CustomerID:      int64Ptr(customer.ID),
		ProductsPresent: true,
		Products: []ItemPayload{
			{ID: int64Ptr(catalog[0].ID)},
			{ID: int64Ptr(catalog[1].ID), Quantity: float64Ptr(2.5)},
			{ID: int64Ptr(catalog[0].ID), Quantity: float64Ptr(0)},
			{ID: int64Ptr(catalog[1].ID), QuantityInvalid: true},
			{ID: int64Ptr(catalog[0].ID), Quantity: float64Ptr(1e30)},
		},
	})
	verrs, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	assertFieldMessage(t, verrs, "products.0.quantity", "O campo quantidade do produto é obrigatório.")
	assertFieldMessage(t, verrs, "products.1.quantity", "O campo quantidade do produto deve ser um número inteiro.")
	assertFieldMessage(t, verrs, "products.2.quantity", "O campo quantidade do produto deve ser no mínimo 1.")
	assertFieldMessage(t, verrs, "products.3.quantity", "O campo quantidade do produto deve ser um número inteiro.")
	assertFieldMessage(t, verrs, "products.4.quantity", "O campo quantidade do produto deve ser um número inteiro.")
}

func TestValidator_MissingProductID(t *testing.T) {
	customers, products, customer, _ := seedCatalog(t)
	v := NewValidator(customers, products)

	_, err := v.Validate(OrderPayload{
		CustomerID:      int64Ptr(customer.ID),
		ProductsPresent: true,
		Products:        []ItemPayload{{Quantity: float64Ptr(1)}},
	})
	verrs, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	assertFieldMessage(t, verrs, "products.0.id", "O campo id do produto é obrigatório.")
}

func assertFieldMessage(t *testing.T, verrs ValidationErrors, field, message string) {
	t.Helper()

	messages, ok := verrs[field]
	if !ok {
		t.Fatalf("expected violation for %q, got %v", field, verrs)
	}
	for _, m := range messages {
		if m == message {
			return
		}
	}
	t.Fatalf("expected message %q for %q, got %v", message, field, messages)
}
