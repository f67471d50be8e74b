package orders

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Placer is the transaction behind PlaceOrder. The pgx Repo implements it;
// tests substitute an in-memory store with the same locking contract.
type Placer interface {
	PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (*Placement, error)
}

type Service struct {
	Repo Placer
	Log  *zap.Logger
}

// PlaceOrder validates the request, runs the placement transaction and
// assembles the receipt. Totals are computed after commit; no writes happen
// here.
func (s *Service) PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (*Receipt, error) {
	// needs no database trip, so it runs before any transaction opens
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.Repo.PlaceOrder(ctx, customerID, productID, quantity)
	if err != nil {
		if stage, ok := FailedStage(err); ok {
			s.Log.Error("order placement aborted",
				zap.Int64("customer_id", customerID),
				zap.Int64("product_id", productID),
				zap.String("stage", string(stage)),
				zap.Error(err),
			)
		}
		return nil, err
	}

	return buildReceipt(p), nil
}

// buildReceipt keeps the order total as a sum over line totals even though a
// placement carries a single line today.
func buildReceipt(p *Placement) *Receipt {
	line := Line{
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		UnitPrice:   p.UnitPrice,
		Quantity:    p.Quantity,
		TotalPrice:  p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))),
	}
	items := []Line{line}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}

	return &Receipt{
		OrderID:    p.OrderID,
		CustomerID: p.CustomerID,
		Items:      items,
		OrderTotal: total,
	}
}
