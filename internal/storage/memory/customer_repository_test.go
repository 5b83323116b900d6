package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
	"github.com/vladislavdragonenkov/pastelaria/internal/storage/memory"
)

func newCustomer(email string) domain.Customer {
	return domain.Customer{
		Nome:        "Fulano de Tal",
		Email:       email,
		Nascimento:  "1990-01-01",
		Endereco:    "Rua Exemplo, 123",
		Complemento: "Apto 45",
		Bairro:      "Bairro Exemplo",
		CEP:         "12345-678",
	}
}

func TestCustomerRepository_CreateGet(t *testing.T) {
	repo := memory.NewCustomerRepository()

	created, err := repo.Create(newCustomer("a@x.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	stored, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Email != "a@x.com" {
		t.Fatalf("unexpected email: %s", stored.Email)
	}
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	repo := memory.NewCustomerRepository()

	if _, err := repo.Create(newCustomer("dup@x.com")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(newCustomer("dup@x.com")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCustomerRepository_SoftDeleteExcludesFromUniqueness(t *testing.T) {
	repo := memory.NewCustomerRepository()

	created, err := repo.Create(newCustomer("livre@x.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.SoftDelete(created.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	if _, err := repo.Get(created.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected not found after soft delete, got %v", err)
	}
	if _, err := repo.Create(newCustomer("livre@x.com")); err != nil {
		t.Fatalf("email must be reusable after soft delete: %v", err)
	}
}

func TestCustomerRepository_UpdateKeepsOwnEmail(t *testing.T) {
	repo := memory.NewCustomerRepository()

	created, err := repo.Create(newCustomer("mesmo@x.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Nome = "Outro Nome"
	updated, err := repo.Update(created)
	if err != nil {
		t.Fatalf("update with own email must not conflict: %v", err)
	}
	if updated.Nome != "Outro Nome" {
		t.Fatalf("unexpected nome: %s", updated.Nome)
	}
}

func TestCustomerRepository_ListSortsAndPaginates(t *testing.T) {
	repo := memory.NewCustomerRepository()

	for _, email := range []string{"c@x.com", "a@x.com", "b@x.com"} {
		if _, err := repo.Create(newCustomer(email)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	page, err := repo.List(domain.ListParams{
		SortBy:        "email",
		SortDirection: domain.SortAsc,
		Page:          1,
		PerPage:       2,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: total=%d items=%d", page.Total, len(page.Items))
	}
	if page.Items[0].Email != "a@x.com" || page.Items[1].Email != "b@x.com" {
		t.Fatalf("unexpected sort order: %s, %s", page.Items[0].Email, page.Items[1].Email)
	}
}
