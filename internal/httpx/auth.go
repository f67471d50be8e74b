package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/banupriyaust/ClothStore/internal/customers"
	"github.com/banupriyaust/ClothStore/internal/token"
)

type ctxKey int

const identityKey ctxKey = iota

type customerGetter interface {
	GetByID(ctx context.Context, id int64) (*customers.Customer, error)
}

// Authenticator resolves a Bearer token to a live customer row. The core
// trusts that identity downstream; no re-validation of credentials happens
// past this point.
type Authenticator struct {
	Tokens    *token.Manager
	Customers customerGetter
}

func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			return
		}
		claims, err := a.Tokens.Verify(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			return
		}
		cust, err := a.Customers.GetByID(r.Context(), claims.UID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "user not found"})
			return
		}
		next.ServeHTTP(w, r.WithContext(withCustomer(r.Context(), cust)))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cust, ok := CustomerFrom(r.Context())
		if !ok || !cust.IsAdmin() {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin only"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func withCustomer(ctx context.Context, c *customers.Customer) context.Context {
	return context.WithValue(ctx, identityKey, c)
}

func CustomerFrom(ctx context.Context) (*customers.Customer, bool) {
	c, ok := ctx.Value(identityKey).(*customers.Customer)
	return c, ok
}
