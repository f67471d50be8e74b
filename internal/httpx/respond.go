package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/banupriyaust/ClothStore/internal/customers"
	"github.com/banupriyaust/ClothStore/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps each failure kind to its own status; anything unknown is
// surfaced as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orders.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, errBody(err))
	case errors.Is(err, orders.ErrProductNotFound),
		errors.Is(err, customers.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody(err))
	case errors.Is(err, orders.ErrInsufficientStock),
		errors.Is(err, customers.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errBody(err))
	case errors.Is(err, orders.ErrLockTimeout):
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusServiceUnavailable, errBody(err))
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func errBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
