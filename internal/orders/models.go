package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placement is the transaction's result: everything needed to assemble the
// caller-facing receipt without another read.
type Placement struct {
	OrderID     int64
	CustomerID  int64
	CreatedAt   time.Time
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

type Line struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type Receipt struct {
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"user_id"`
	Items      []Line          `json:"items"`
	OrderTotal decimal.Decimal `json:"order_total"`
}

// HistoryLine is one row of a customer's order history.
type HistoryLine struct {
	OrderID     int64           `json:"order_id"`
	CustomerID  int64           `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}
