package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// lock_not_available: FOR UPDATE gave up because of lock_timeout.
const pgLockNotAvailable = "55P03"

type Repo struct {
	DB *pgxpool.Pool
	// LockTimeout bounds how long the FOR UPDATE read waits for a
	// concurrent placement on the same product. Zero keeps the session
	// default (unbounded).
	LockTimeout time.Duration
}

// PlaceOrder runs the whole placement as one transaction: lock the product
// row, check stock, decrement, insert the order and its line. Exactly one of
// commit/rollback happens on every path — Rollback in the defer is a no-op
// once Commit has succeeded.
func (r *Repo) PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (*Placement, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, failAt(StageLocking, fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback(ctx)

	if r.LockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.LockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, failAt(StageLocking, fmt.Errorf("set lock_timeout: %w", err))
		}
	}

	var (
		name  string
		price decimal.Decimal
		stock int
	)
	err = tx.QueryRow(ctx, `
		SELECT name, price, stock
		FROM products
		WHERE product_id = $1
		FOR UPDATE`, productID).Scan(&name, &price, &stock)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrProductNotFound
	case isLockTimeout(err):
		return nil, ErrLockTimeout
	case err != nil:
		return nil, failAt(StageLocking, fmt.Errorf("lock product: %w", err))
	}

	if stock < quantity {
		return nil, ErrInsufficientStock
	}

	// relative decrement; the row lock already serializes writers here
	if _, err := tx.Exec(ctx, `
		UPDATE products SET stock = stock - $2 WHERE product_id = $1`,
		productID, quantity); err != nil {
		return nil, failAt(StageMutating, fmt.Errorf("decrement stock: %w", err))
	}

	var (
		orderID   int64
		createdAt time.Time
	)
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id) VALUES ($1)
		RETURNING order_id, created_at`, customerID).Scan(&orderID, &createdAt); err != nil {
		return nil, failAt(StagePersisting, fmt.Errorf("insert order: %w", err))
	}

	// unit_price is the price read under the lock, not a re-read
	if _, err := tx.Exec(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)`,
		orderID, productID, quantity, price); err != nil {
		return nil, failAt(StagePersisting, fmt.Errorf("insert order item: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, failAt(StagePersisting, fmt.Errorf("commit: %w", err))
	}

	return &Placement{
		OrderID:     orderID,
		CustomerID:  customerID,
		CreatedAt:   createdAt,
		ProductID:   productID,
		ProductName: name,
		UnitPrice:   price,
		Quantity:    quantity,
	}, nil
}

func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable
}

// ListByCustomer returns the caller's order history, newest first.
func (r *Repo) ListByCustomer(ctx context.Context, customerID int64) ([]HistoryLine, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT
			o.order_id,
			o.customer_id,
			o.created_at,
			oi.product_id,
			p.name,
			oi.quantity,
			oi.unit_price,
			(oi.quantity * oi.unit_price)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.order_id
		JOIN products p ON p.product_id = oi.product_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC, o.order_id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryLine
	for rows.Next() {
		var h HistoryLine
		if err := rows.Scan(&h.OrderID, &h.CustomerID, &h.CreatedAt, &h.ProductID,
			&h.ProductName, &h.Quantity, &h.UnitPrice, &h.LineTotal); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
