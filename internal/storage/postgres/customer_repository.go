package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

// Столбцы, по которым разрешена сортировка клиентов. Дублирует проверку
// HTTP-слоя, чтобы динамический ORDER BY никогда не собирался из сырого ввода.
var customerSortColumns = map[string]struct{}{
	"nome":       {},
	"email":      {},
	"created_at": {},
	"updated_at": {},
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (nome, email, nascimento, endereco, complemento, bairro, cep)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`,
		customer.Nome, customer.Email, customer.Nascimento,
		customer.Endereco, customer.Complemento, customer.Bairro, customer.CEP,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, domain.ErrEmailTaken
		}
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) Get(id int64) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, `
		SELECT id, nome, email, to_char(nascimento, 'YYYY-MM-DD'),
		       endereco, complemento, bairro, cep, created_at, updated_at
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) List(params domain.ListParams) (domain.PagedResult[domain.Customer], error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var result domain.PagedResult[domain.Customer]

	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL
	`).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("count customers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, nome, email, to_char(nascimento, 'YYYY-MM-DD'),
		       endereco, complemento, bairro, cep, created_at, updated_at
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2
	`, sortColumn(customerSortColumns, params.SortBy), sortDirection(params.SortDirection))

	rows, err := r.db.QueryContext(ctx, query, params.PerPage, pageOffset(params))
	if err != nil {
		return result, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return result, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("iterate customer rows: %w", err)
	}

	result.Items = customers
	result.Page = params.Page
	result.PerPage = params.PerPage
	return result, nil
}

func (r *customerRepository) Update(customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		UPDATE customers
		SET nome = $1,
		    email = $2,
		    nascimento = $3::date,
		    endereco = $4,
		    complemento = $5,
		    bairro = $6,
		    cep = $7,
		    updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
		RETURNING id, created_at, updated_at
	`,
		customer.Nome, customer.Email, customer.Nascimento,
		customer.Endereco, customer.Complemento, customer.Bairro, customer.CEP,
		customer.ID,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		if isUniqueViolation(err) {
			return domain.Customer{}, domain.ErrEmailTaken
		}
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) SoftDelete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Exists(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var one int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM customers WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check customer exists: %w", err)
}

func (r *customerRepository) EmailTaken(email string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var one int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM customers
		WHERE email = $1 AND deleted_at IS NULL AND id <> $2
	`, email, excludeID).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check email taken: %w", err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var customer domain.Customer
	err := row.Scan(
		&customer.ID, &customer.Nome, &customer.Email, &customer.Nascimento,
		&customer.Endereco, &customer.Complemento, &customer.Bairro, &customer.CEP,
		&customer.CreatedAt, &customer.UpdatedAt,
	)
	return customer, err
}

func sortColumn(allowed map[string]struct{}, column string) string {
	if _, ok := allowed[column]; ok {
		return column
	}
	return "created_at"
}

func sortDirection(direction domain.SortDirection) string {
	if direction == domain.SortDesc {
		return "DESC"
	}
	return "ASC"
}

func pageOffset(params domain.ListParams) int {
	page := params.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * params.PerPage
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
