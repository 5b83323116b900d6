package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

// OrderStore — in-memory хранилище заказов, совмещающее OrderRepository и
// OrderUnitOfWork. Транзакционность моделируется снапшотом состояния:
// при ошибке или панике внутри Within состояние восстанавливается целиком.
type OrderStore struct {
	mu       sync.Mutex
	seq      int64
	orders   map[int64]domain.Order
	products domain.ProductRepository
}

// NewOrderStore создаёт хранилище заказов поверх переданного каталога:
// повторная проверка существования товара внутри транзакции читает его.
func NewOrderStore(products domain.ProductRepository) *OrderStore {
	return &OrderStore{
		orders:   make(map[int64]domain.Order),
		products: products,
	}
}

func (s *OrderStore) Get(id int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok || order.DeletedAt != nil {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (s *OrderStore) List(params domain.ListParams) (domain.PagedResult[domain.Order], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alive := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if order.DeletedAt == nil {
			alive = append(alive, cloneOrder(order))
		}
	}
	sort.Slice(alive, func(i, j int) bool { return alive[i].ID < alive[j].ID })

	return paginate(alive, params), nil
}

func (s *OrderStore) SoftDelete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok || order.DeletedAt != nil {
		return domain.ErrOrderNotFound
	}

	now := time.Now().UTC()
	order.DeletedAt = &now
	order.UpdatedAt = now
	s.orders[id] = order
	return nil
}

func (s *OrderStore) ForceDelete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	// Позиции живут внутри заказа: удаление строки отвязывает их разом.
	delete(s.orders, id)
	return nil
}

// Within исполняет fn под общим замком, откатывая все изменения при ошибке
// или панике восстановлением снапшота.
func (s *OrderStore) Within(_ context.Context, fn func(tx domain.OrderTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[int64]domain.Order, len(s.orders))
	for id, order := range s.orders {
		snapshot[id] = cloneOrder(order)
	}
	seq := s.seq

	restore := func() {
		s.orders = snapshot
		s.seq = seq
	}

	defer func() {
		if p := recover(); p != nil {
			restore()
			panic(p)
		}
	}()

	if err := fn(&memoryOrderTx{store: s}); err != nil {
		restore()
		return err
	}

	return nil
}

// memoryOrderTx работает с уже захваченным замком хранилища.
type memoryOrderTx struct {
	store *OrderStore
}

func (t *memoryOrderTx) InsertOrder(customerID int64) (int64, error) {
	s := t.store
	s.seq++
	now := time.Now().UTC()
	s.orders[s.seq] = domain.Order{
		ID:         s.seq,
		CustomerID: customerID,
		Items:      []domain.LineItem{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.seq, nil
}

func (t *memoryOrderTx) UpdateOrderCustomer(orderID, customerID int64) error {
	s := t.store
	order, ok := s.orders[orderID]
	if !ok || order.DeletedAt != nil {
		return domain.ErrOrderNotFound
	}
	order.CustomerID = customerID
	order.UpdatedAt = time.Now().UTC()
	s.orders[orderID] = order
	return nil
}

func (t *memoryOrderTx) DetachItems(orderID int64) error {
	s := t.store
	order, ok := s.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Items = []domain.LineItem{}
	s.orders[orderID] = order
	return nil
}

func (t *memoryOrderTx) FindProduct(productID int64) (domain.Product, error) {
	return t.store.products.Get(productID)
}

func (t *memoryOrderTx) AttachItem(orderID int64, product domain.Product, quantity int) error {
	s := t.store
	order, ok := s.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}

	now := time.Now().UTC()
	for i := range order.Items {
		if order.Items[i].ProductID == product.ID {
			// Повторная привязка того же товара перезаписывает позицию.
			order.Items[i].Quantity = quantity
			order.Items[i].Nome = product.Nome
			order.Items[i].Preco = product.Preco
			order.Items[i].Foto = product.Foto
			order.Items[i].UpdatedAt = now
			s.orders[orderID] = order
			return nil
		}
	}

	order.Items = append(order.Items, domain.LineItem{
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  quantity,
		Nome:      product.Nome,
		Preco:     product.Preco,
		Foto:      product.Foto,
		CreatedAt: now,
		UpdatedAt: now,
	})
	s.orders[orderID] = order
	return nil
}

func cloneOrder(order domain.Order) domain.Order {
	clone := order
	clone.Items = append([]domain.LineItem(nil), order.Items...)
	if order.DeletedAt != nil {
		deletedAt := *order.DeletedAt
		clone.DeletedAt = &deletedAt
	}
	return clone
}

var (
	_ domain.OrderRepository = (*OrderStore)(nil)
	_ domain.OrderUnitOfWork = (*OrderStore)(nil)
)
