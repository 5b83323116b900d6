package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
	"github.com/vladislavdragonenkov/pastelaria/internal/storage/memory"
)

type stubNotifier struct {
	mu        sync.Mutex
	err       error
	calls     int
	lastOrder domain.Order
	lastEmail string
}

func (s *stubNotifier) OrderPlaced(order domain.Order, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastOrder = order
	s.lastEmail = email
	return s.err
}

func intPtr(v int) *int { return &v }

func newManagerFixture(t *testing.T) (Manager, *memory.OrderStore, *stubNotifier, domain.Customer, []domain.Product) {
	t.Helper()

	customers, products, customer, catalog := seedCatalog(t)
	store := memory.NewOrderStore(products)
	notifier := &stubNotifier{}
	mgr := NewManagerWithoutMetrics(store, store, customers, notifier, nil)

	return mgr, store, notifier, customer, catalog
}

func TestManager_PlaceCommitsAndNotifies(t *testing.T) {
	mgr, store, notifier, customer, catalog := newManagerFixture(t)

	order, err := mgr.Place(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Items: []InputItem{
			{ProductID: catalog[0].ID, Quantity: intPtr(2)},
			{ProductID: catalog[1].ID, Quantity: intPtr(1)},
		},
	})
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if order.CustomerID != customer.ID {
		t.Fatalf("unexpected customer id: %d", order.CustomerID)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if order.Items[0].Nome == "" || order.Items[0].Preco == 0 {
		t.Fatalf("expected product snapshot on item, got %+v", order.Items[0])
	}

	stored, err := store.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 stored items, got %d", len(stored.Items))
	}

	if notifier.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.calls)
	}
	if notifier.lastEmail != customer.Email {
		t.Fatalf("notification sent to %q, want %q", notifier.lastEmail, customer.Email)
	}
	if notifier.lastOrder.ID != order.ID {
		t.Fatalf("notification carries order %d, want %d", notifier.lastOrder.ID, order.ID)
	}
}

func TestManager_PlaceRollsBackOnMissingProduct(t *testing.T) {
	mgr, store, notifier, customer, catalog := newManagerFixture(t)

	_, err := mgr.Place(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Items: []InputItem{
			{ProductID: catalog[0].ID, Quantity: intPtr(1)},
			{ProductID: 9999, Quantity: intPtr(1)},
		},
	})
	if !domain.IsOrderTxError(err) {
		t.Fatalf("expected OrderTxError, got %v", err)
	}
	if err.Error() != "Produto com ID 9999 não encontrado." {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	page, listErr := store.List(domain.ListParams{Page: 1, PerPage: 10})
	if listErr != nil {
		t.Fatalf("list failed: %v", listErr)
	}
	if page.Total != 0 {
		t.Fatalf("expected empty store after rollback, got %d orders", page.Total)
	}
	if notifier.calls != 0 {
		t.Fatalf("notification must not fire on rollback, got %d", notifier.calls)
	}
}

func TestManager_PlaceFirstFailureWins(t *testing.T) {
	mgr, _, _, customer, catalog := newManagerFixture(t)

	// Обе позиции проблемные: ошибка называет первую в порядке запроса.
	_, err := mgr.Place(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Items: []InputItem{
			{ProductID: catalog[0].ID},
			{ProductID: 9999, Quantity: intPtr(1)},
		},
	})
	if !domain.IsOrderTxError(err) {
		t.Fatalf("expected OrderTxError, got %v", err)
	}
	want := fmt.Sprintf("Quantidade não fornecida para o produto com ID %d.", catalog[0].ID)
	if err.Error() != want {
		t.Fatalf("unexpected message: %q, want %q", err.Error(), want)
	}
}

func TestManager_ReplaceFullReplace(t *testing.T) {
	mgr, store, notifier, customer, catalog := newManagerFixture(t)

	order, err := mgr.Place(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Items: []InputItem{
			{ProductID: catalog[0].ID, Quantity: intPtr(2)},
			{ProductID: catalog[1].ID, Quantity: intPtr(3)},
		},
	})
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	replaced, err := mgr.Replace(context.Background(), order.ID, PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []InputItem{{ProductID: catalog[1].ID, Quantity: intPtr(5)}},
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(replaced.Items) != 1 {
		t.Fatalf("expected exactly 1 item after replace, got %d", len(replaced.Items))
	}
	if replaced.Items[0].ProductID != catalog[1].ID || replaced.Items[0].Quantity != 5 {
		t.Fatalf("unexpected surviving item: %+v", replaced.Items[0])
	}

	// Повторная замена тем же составом даёт тот же результат.
	again, err := mgr.Replace(context.Background(), order.ID, PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []InputItem{{ProductID: catalog[1].ID, Quantity: intPtr(5)}},
	})
	if err != nil {
		t.Fatalf("second replace failed: %v", err)
	}
	if len(again.Items) != 1 || again.Items[0].Quantity != 5 {
		t.Fatalf("replace is not idempotent: %+v", again.Items)
	}

	stored, err := store.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Items) != 1 {
		t.Fatalf("expected 1 stored item, got %d", len(stored.Items))
	}

	if notifier.calls != 1 {
		t.Fatalf("replace must not notify, got %d calls", notifier.calls)
	}
}

func TestManager_ReplaceRollsBackKeepingOldItems(t *testing.T) {
	mgr, store, _, customer, catalog := newManagerFixture(t)

	order, err := mgr.Place(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []InputItem{{ProductID: catalog[0].ID, Quantity: intPtr(2)}},
	})
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	_, err = mgr.Replace(context.Background(), order.ID, PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []InputItem{{ProductID: 9999, Quantity: intPtr(1)}},
	})
	if !domain.IsOrderTxError(err) {
		t.Fatalf("expected OrderTxError, got %v", err)
	}

	stored, err := store.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].ProductID != catalog[0].ID {
		t.Fatalf("rollback must keep the old composition, got %+v", stored.Items)
	}
}

func TestManager_ReplaceNotFound(t *testing.T) {
	mgr, store, _, customer, catalog := newManagerFixture(t)

	_, err := mgr.Replace(context.Background(), 777, PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []InputItem{{ProductID: catalog[0].ID, Quantity: intPtr(1)}},
	})
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	page, listErr := store.List(domain.ListParams{Page: 1, PerPage: 10})
	if listErr != nil {
		t.Fatalf("list failed: %v", listErr)
	}
	if page.Total != 0 {
		t.Fatalf("replace of a missing order must not write, got %d orders", page.Total)
	}
}

func TestManager_NotifierFailureSwallowed(t *testing.T) {
	customers, products, customer, catalog := seedCatalog(t)
	store := memory.NewOrderStore(products)
	notifier := &stubNotifier{err: errors.New("broker down")}
	mgr := NewManagerWithoutMetrics(store, store, customers, notifier, nil)

	order, err := mgr.Place(context.Background(), PlaceOrderInput{
		CustomerID: customer.ID,
		Items:      []InputItem{{ProductID: catalog[0].ID, Quantity: intPtr(1)}},
	})
	if err != nil {
		t.Fatalf("notifier failure must not fail the order: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected committed order")
	}
	if notifier.calls != 1 {
		t.Fatalf("expected 1 notification attempt, got %d", notifier.calls)
	}
}
