package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
)

type orderUnitOfWork struct {
	db *sql.DB
}

// NewOrderUnitOfWork создаёт транзакционную область для мутаций заказов.
func NewOrderUnitOfWork(store *Store) domain.OrderUnitOfWork {
	return &orderUnitOfWork{db: store.DB()}
}

// Within открывает транзакцию и передаёт её операции в fn. Откат гарантирован
// на каждом выходе с ошибкой, включая панику внутри fn.
func (u *orderUnitOfWork) Within(ctx context.Context, fn func(tx domain.OrderTx) error) (err error) {
	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&orderTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}

	return nil
}

// orderTx реализует операции домена поверх открытой транзакции.
type orderTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *orderTx) InsertOrder(customerID int64) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(t.ctx, `
		INSERT INTO orders (customer_id)
		VALUES ($1)
		RETURNING id
	`, customerID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

func (t *orderTx) UpdateOrderCustomer(orderID, customerID int64) error {
	res, err := t.tx.ExecContext(t.ctx, `
		UPDATE orders
		SET customer_id = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, customerID, orderID)
	if err != nil {
		return fmt.Errorf("update order customer: %w", err)
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

func (t *orderTx) DetachItems(orderID int64) error {
	if _, err := t.tx.ExecContext(t.ctx, `
		DELETE FROM order_items WHERE order_id = $1
	`, orderID); err != nil {
		return fmt.Errorf("detach order items: %w", err)
	}
	return nil
}

// FindProduct перечитывает товар внутри транзакции. FOR SHARE держит строку
// до коммита, так что конкурентное жёсткое удаление товара не проскочит
// между этой проверкой и записью позиции.
func (t *orderTx) FindProduct(productID int64) (domain.Product, error) {
	var product domain.Product
	err := t.tx.QueryRowContext(t.ctx, `
		SELECT id, nome, preco, foto, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR SHARE
	`, productID).Scan(
		&product.ID, &product.Nome, &product.Preco, &product.Foto,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("find product in tx: %w", err)
	}

	return product, nil
}

func (t *orderTx) AttachItem(orderID int64, product domain.Product, quantity int) error {
	if _, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, nome, preco, foto)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id, product_id) DO UPDATE
		SET quantity = EXCLUDED.quantity,
		    nome = EXCLUDED.nome,
		    preco = EXCLUDED.preco,
		    foto = EXCLUDED.foto,
		    updated_at = NOW()
	`, orderID, product.ID, quantity, product.Nome, product.Preco, product.Foto); err != nil {
		return fmt.Errorf("attach order item: %w", err)
	}
	return nil
}

var (
	_ domain.OrderUnitOfWork = (*orderUnitOfWork)(nil)
	_ domain.OrderTx         = (*orderTx)(nil)
)
