// Package stats serves the admin sales reports with SQL aggregates.
package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type UserSales struct {
	UserID      int64           `json:"user_id"`
	OrderCount  int64           `json:"order_count"`
	ItemsBought int64           `json:"items_bought"`
	MoneySpent  decimal.Decimal `json:"money_spent"`
}

type ProductSales struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	TimesOrdered int64           `json:"times_ordered"`
	UnitsSold    int64           `json:"units_sold"`
	Turnover     decimal.Decimal `json:"turnover"`
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) ByUser(ctx context.Context) ([]UserSales, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT
			o.customer_id,
			COUNT(DISTINCT o.order_id),
			COALESCE(SUM(oi.quantity), 0),
			COALESCE(SUM(oi.quantity * oi.unit_price), 0)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.order_id
		GROUP BY o.customer_id
		ORDER BY COALESCE(SUM(oi.quantity * oi.unit_price), 0) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserSales
	for rows.Next() {
		var u UserSales
		if err := rows.Scan(&u.UserID, &u.OrderCount, &u.ItemsBought, &u.MoneySpent); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) ByProduct(ctx context.Context) ([]ProductSales, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT
			p.product_id,
			p.name,
			COUNT(oi.order_id),
			COALESCE(SUM(oi.quantity), 0),
			COALESCE(SUM(oi.quantity * oi.unit_price), 0)
		FROM products p
		JOIN order_items oi ON oi.product_id = p.product_id
		GROUP BY p.product_id, p.name
		ORDER BY COALESCE(SUM(oi.quantity * oi.unit_price), 0) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductSales
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.TimesOrdered, &p.UnitsSold, &p.Turnover); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
