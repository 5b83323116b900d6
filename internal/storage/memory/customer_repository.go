package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[int64]domain.Customer),
	}
}

func (r *customerRepositoryInMemory) Create(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(customer.Email, 0) {
		return domain.Customer{}, domain.ErrEmailTaken
	}

	r.seq++
	now := time.Now().UTC()
	customer.ID = r.seq
	customer.CreatedAt = now
	customer.UpdatedAt = now
	customer.DeletedAt = nil
	r.items[customer.ID] = customer

	return customer, nil
}

func (r *customerRepositoryInMemory) Get(id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok || customer.DeletedAt != nil {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepositoryInMemory) List(params domain.ListParams) (domain.PagedResult[domain.Customer], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alive := make([]domain.Customer, 0, len(r.items))
	for _, customer := range r.items {
		if customer.DeletedAt == nil {
			alive = append(alive, customer)
		}
	}

	sort.Slice(alive, func(i, j int) bool {
		cmp := compareCustomers(params.SortBy, alive[i], alive[j])
		if cmp == 0 {
			return alive[i].ID < alive[j].ID
		}
		if params.SortDirection == domain.SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	return paginate(alive, params), nil
}

func compareCustomers(sortBy string, a, b domain.Customer) int {
	switch sortBy {
	case "nome":
		return compareStrings(a.Nome, b.Nome)
	case "email":
		return compareStrings(a.Email, b.Email)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (r *customerRepositoryInMemory) Update(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[customer.ID]
	if !ok || current.DeletedAt != nil {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	if r.emailTakenLocked(customer.Email, customer.ID) {
		return domain.Customer{}, domain.ErrEmailTaken
	}

	customer.CreatedAt = current.CreatedAt
	customer.UpdatedAt = time.Now().UTC()
	customer.DeletedAt = nil
	r.items[customer.ID] = customer

	return customer, nil
}

func (r *customerRepositoryInMemory) SoftDelete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok || current.DeletedAt != nil {
		return domain.ErrCustomerNotFound
	}

	now := time.Now().UTC()
	current.DeletedAt = &now
	current.UpdatedAt = now
	r.items[id] = current

	return nil
}

func (r *customerRepositoryInMemory) Exists(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	return ok && customer.DeletedAt == nil, nil
}

func (r *customerRepositoryInMemory) EmailTaken(email string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.emailTakenLocked(email, excludeID), nil
}

func (r *customerRepositoryInMemory) emailTakenLocked(email string, excludeID int64) bool {
	for _, customer := range r.items {
		if customer.DeletedAt != nil || customer.ID == excludeID {
			continue
		}
		if customer.Email == email {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, params domain.ListParams) domain.PagedResult[T] {
	result := domain.PagedResult[T]{
		Page:    params.Page,
		PerPage: params.PerPage,
		Total:   len(items),
	}
	if result.Page < 1 {
		result.Page = 1
	}

	start := (result.Page - 1) * params.PerPage
	if start >= len(items) {
		result.Items = []T{}
		return result
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	result.Items = append([]T(nil), items[start:end]...)
	return result
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
