package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/banupriyaust/ClothStore/internal/redisx"
	"github.com/banupriyaust/ClothStore/internal/stats"
)

type statsSource interface {
	ByUser(ctx context.Context) ([]stats.UserSales, error)
	ByProduct(ctx context.Context) ([]stats.ProductSales, error)
}

type StatsHandler struct {
	Stats statsSource
	Cache redisx.Cache
	Log   *zap.Logger
}

func (h *StatsHandler) Register(r chi.Router, auth *Authenticator) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Require, RequireAdmin)
		r.Get("/statistics/users", h.byUser)
		r.Get("/statistics/products", h.byProduct)
	})
}

func (h *StatsHandler) byUser(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, redisx.KeyStatsUsers, func(ctx context.Context) (any, error) {
		rows, err := h.Stats.ByUser(ctx)
		if rows == nil {
			rows = []stats.UserSales{}
		}
		return rows, err
	})
}

func (h *StatsHandler) byProduct(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, redisx.KeyStatsProducts, func(ctx context.Context) (any, error) {
		rows, err := h.Stats.ByProduct(ctx)
		if rows == nil {
			rows = []stats.ProductSales{}
		}
		return rows, err
	})
}

func (h *StatsHandler) cached(w http.ResponseWriter, r *http.Request, key string, load func(ctx context.Context) (any, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if s, ok, err := h.Cache.Get(ctx, key); err == nil && ok {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	rows, err := load(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := json.Marshal(rows)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Cache.Set(ctx, key, string(b), redisx.TTLStats); err != nil {
		h.Log.Warn("stats cache write failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, json.RawMessage(b))
}
