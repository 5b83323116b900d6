package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

var productSortColumns = map[string]struct{}{
	"nome":       {},
	"preco":      {},
	"created_at": {},
	"updated_at": {},
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (nome, preco, foto)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, product.Nome, product.Preco, product.Foto).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Get(id int64) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nome, preco, foto, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&product.ID, &product.Nome, &product.Preco, &product.Foto,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r *productRepository) List(params domain.ListParams) (domain.PagedResult[domain.Product], error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var result domain.PagedResult[domain.Product]

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, nome, preco, foto, created_at, updated_at
		FROM products
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2
	`, sortColumn(productSortColumns, params.SortBy), sortDirection(params.SortDirection))

	rows, err := r.db.QueryContext(ctx, query, params.PerPage, pageOffset(params))
	if err != nil {
		return result, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Nome, &product.Preco, &product.Foto,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return result, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("iterate product rows: %w", err)
	}

	result.Items = products
	result.Page = params.Page
	result.PerPage = params.PerPage
	return result, nil
}

func (r *productRepository) Update(product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET nome = $1, preco = $2, foto = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, created_at, updated_at
	`, product.Nome, product.Preco, product.Foto, product.ID).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

// Delete удаляет товар жёстко. Снапшоты в order_items остаются как есть.
func (r *productRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Exists(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = $1`, id).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check product exists: %w", err)
}

var _ domain.ProductRepository = (*productRepository)(nil)
