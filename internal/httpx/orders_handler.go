package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/banupriyaust/ClothStore/internal/kafka"
	"github.com/banupriyaust/ClothStore/internal/orders"
	"github.com/banupriyaust/ClothStore/internal/redisx"
)

type placeOrderService interface {
	PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (*orders.Receipt, error)
}

type orderHistory interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]orders.HistoryLine, error)
}

type eventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Svc      placeOrderService
	History  orderHistory
	Producer eventPublisher
	Cache    redisx.Cache
	Log      *zap.Logger
	Service  string // producer name stamped on envelopes
}

type PlaceOrderReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *OrdersHandler) Register(r chi.Router, auth *Authenticator) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Require)
		r.Post("/orders", h.placeOrder)
		r.Get("/orders", h.listMyOrders)
	})
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	cust, ok := CustomerFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rcpt, err := h.Svc.PlaceOrder(ctx, cust.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	// post-commit side effects: the order exists regardless of their fate
	h.publishPlaced(rcpt, middleware.GetReqID(r.Context()))
	if err := h.Cache.Del(ctx, redisx.KeyCatalogList); err != nil {
		h.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, rcpt)
}

func (h *OrdersHandler) publishPlaced(rcpt *orders.Receipt, traceID string) {
	items := make([]orders.PlacedItem, 0, len(rcpt.Items))
	for _, it := range rcpt.Items {
		items = append(items, orders.PlacedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: string(orders.PartitionKey(rcpt.OrderID)),
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderPlacedPayload{
		OrderID:    rcpt.OrderID,
		CustomerID: rcpt.CustomerID,
		Items:      items,
		OrderTotal: rcpt.OrderTotal,
	})
	h.Producer.Publish(orders.PartitionKey(rcpt.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	cust, ok := CustomerFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	lines, err := h.History.ListByCustomer(ctx, cust.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if lines == nil {
		lines = []orders.HistoryLine{}
	}
	writeJSON(w, http.StatusOK, lines)
}
