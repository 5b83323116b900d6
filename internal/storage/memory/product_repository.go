package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий каталога.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[int64]domain.Product),
	}
}

func (r *productRepositoryInMemory) Create(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	now := time.Now().UTC()
	product.ID = r.seq
	product.CreatedAt = now
	product.UpdatedAt = now
	r.items[product.ID] = product

	return product, nil
}

func (r *productRepositoryInMemory) Get(id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *productRepositoryInMemory) List(params domain.ListParams) (domain.PagedResult[domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		all = append(all, product)
	}

	sort.Slice(all, func(i, j int) bool {
		cmp := compareProducts(params.SortBy, all[i], all[j])
		if cmp == 0 {
			return all[i].ID < all[j].ID
		}
		if params.SortDirection == domain.SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	return paginate(all, params), nil
}

func compareProducts(sortBy string, a, b domain.Product) int {
	switch sortBy {
	case "nome":
		return compareStrings(a.Nome, b.Nome)
	case "preco":
		switch {
		case a.Preco < b.Preco:
			return -1
		case a.Preco > b.Preco:
			return 1
		default:
			return 0
		}
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func (r *productRepositoryInMemory) Update(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[product.ID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}

	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	r.items[product.ID] = product

	return product, nil
}

// Delete удаляет товар жёстко; снапшоты в заказах остаются.
func (r *productRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *productRepositoryInMemory) Exists(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
