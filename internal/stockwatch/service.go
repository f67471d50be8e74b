// Package stockwatch consumes order-placed events and flags products whose
// stock has fallen to the reorder threshold.
package stockwatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/banupriyaust/ClothStore/internal/catalog"
	kafkax "github.com/banupriyaust/ClothStore/internal/kafka"
	"github.com/banupriyaust/ClothStore/internal/orders"
	"github.com/banupriyaust/ClothStore/internal/redisx"
)

type stockReader interface {
	Stock(ctx context.Context, productID int64) (name string, stock int, err error)
}

type Service struct {
	Products  stockReader
	Cache     redisx.Cache
	Threshold int
	Log       *zap.Logger
	Name      string // dedup namespace, e.g. "stockwatch"
}

// HandleOrderPlaced is wired as the consumer handler. Returning nil commits
// the offset.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// dedup by event id; a lost SetNX means someone already handled it
	key := fmt.Sprintf(redisx.KeyDedup, s.Name, env.EventID)
	claimed, err := s.Cache.SetNX(ctx, key, "1", redisx.TTLDedup)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	for _, it := range p.Items {
		name, stock, err := s.Products.Stock(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			return err
		}
		if stock <= s.Threshold {
			s.Log.Warn("low stock",
				zap.Int64("product_id", it.ProductID),
				zap.String("product", name),
				zap.Int("stock", stock),
				zap.Int("threshold", s.Threshold),
				zap.Int64("order_id", p.OrderID),
			)
		}
	}
	return nil
}
