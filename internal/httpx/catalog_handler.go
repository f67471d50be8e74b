package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/banupriyaust/ClothStore/internal/catalog"
	"github.com/banupriyaust/ClothStore/internal/redisx"
)

type productLister interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

type CatalogHandler struct {
	Products productLister
	Cache    redisx.Cache
	Log      *zap.Logger
}

func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/products", h.list)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if s, ok, err := h.Cache.Get(ctx, redisx.KeyCatalogList); err == nil && ok {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	ps, err := h.Products.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if ps == nil {
		ps = []catalog.Product{}
	}

	b, err := json.Marshal(ps)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Cache.Set(ctx, redisx.KeyCatalogList, string(b), redisx.TTLCatalog); err != nil {
		h.Log.Warn("catalog cache write failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, json.RawMessage(b))
}
