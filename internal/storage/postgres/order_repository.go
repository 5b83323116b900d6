package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
// Мутации заказов живут в OrderUnitOfWork; здесь только чтения и удаления.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, created_at, updated_at
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&order.ID, &order.CustomerID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) List(params domain.ListParams) (domain.PagedResult[domain.Order], error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var result domain.PagedResult[domain.Order]

	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE deleted_at IS NULL
	`).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("count orders: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, created_at, updated_at
		FROM orders
		WHERE deleted_at IS NULL
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`, params.PerPage, pageOffset(params))
	if err != nil {
		return result, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return result, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return result, err
		}
		orders[i].Items = items
	}

	result.Items = orders
	result.Page = params.Page
	result.PerPage = params.PerPage
	return result, nil
}

func (r *orderRepository) SoftDelete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// ForceDelete отвязывает все позиции и физически удаляет строку заказа.
func (r *orderRepository) ForceDelete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("detach order items: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		err = domain.ErrOrderNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit force delete order: %w", err)
	}

	return nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, quantity, nome, preco, foto, created_at, updated_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC, product_id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.LineItem, 0)
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(
			&item.OrderID, &item.ProductID, &item.Quantity,
			&item.Nome, &item.Preco, &item.Foto,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
