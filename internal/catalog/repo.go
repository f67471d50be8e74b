package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT
			p.product_id,
			p.name,
			c.name,
			p.price,
			p.stock
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		ORDER BY p.product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.CategoryName, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Stock reads the current level without locking; used by the stock watcher
// after an order commits.
func (r *Repo) Stock(ctx context.Context, productID int64) (name string, stock int, err error) {
	err = r.DB.QueryRow(ctx, `
		SELECT name, stock FROM products WHERE product_id = $1`, productID).
		Scan(&name, &stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, ErrProductNotFound
	}
	return name, stock, err
}
