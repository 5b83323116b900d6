package domain

import (
	"errors"
	"testing"
)

func validOrder() Order {
	return Order{
		ID:         1,
		CustomerID: 10,
		Items: []LineItem{
			{OrderID: 1, ProductID: 5, Quantity: 2, Nome: "Pastel de Carne", Preco: 10.0},
		},
	}
}

func TestValidateInvariants_Valid(t *testing.T) {
	order := validOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateInvariants_MissingCustomer(t *testing.T) {
	order := validOrder()
	order.CustomerID = 0

	errs := order.ValidateInvariants()
	if len(errs) != 1 || !errors.Is(errs[0], ErrCustomerRequired) {
		t.Fatalf("expected ErrCustomerRequired, got %v", errs)
	}
}

func TestValidateInvariants_EmptyItems(t *testing.T) {
	order := validOrder()
	order.Items = nil

	errs := order.ValidateInvariants()
	if len(errs) != 1 || !errors.Is(errs[0], ErrItemsRequired) {
		t.Fatalf("expected ErrItemsRequired, got %v", errs)
	}
}

func TestValidateInvariants_CollectsAllItemViolations(t *testing.T) {
	order := validOrder()
	order.Items = append(order.Items, LineItem{ProductID: 0, Quantity: 0})

	errs := order.ValidateInvariants()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}

func TestTotal(t *testing.T) {
	order := Order{
		Items: []LineItem{
			{ProductID: 1, Quantity: 2, Preco: 10.0},
			{ProductID: 2, Quantity: 1, Preco: 8.0},
		},
	}
	if got := order.Total(); got != 28.0 {
		t.Fatalf("expected total 28.0, got %v", got)
	}
}
