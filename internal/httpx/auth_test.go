package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banupriyaust/ClothStore/internal/customers"
	"github.com/banupriyaust/ClothStore/internal/token"
)

func newTestAuth(t *testing.T, store *fakeCustomers) (*Authenticator, *token.Manager) {
	t.Helper()
	tokens := token.NewManager("test-secret", time.Hour)
	return &Authenticator{Tokens: tokens, Customers: store}, tokens
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthenticator_MissingHeader(t *testing.T) {
	auth, _ := newTestAuth(t, newFakeCustomers())
	next, called := okHandler()

	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	auth, _ := newTestAuth(t, newFakeCustomers())
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticator_UserVanished(t *testing.T) {
	auth, tokens := newTestAuth(t, newFakeCustomers())
	raw, err := tokens.Issue("ghost@example.com", "customer", 99)
	require.NoError(t, err)

	next, called := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticator_ValidToken_IdentityInContext(t *testing.T) {
	store := newFakeCustomers()
	store.add(customers.Customer{ID: 7, FirstName: "Ada", Email: "ada@example.com", Role: customers.RoleCustomer}, "")
	auth, tokens := newTestAuth(t, store)

	raw, err := tokens.Issue("ada@example.com", customers.RoleCustomer, 7)
	require.NoError(t, err)

	var seen *customers.Customer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CustomerFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.ID)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		cust *customers.Customer
		want int
	}{
		{name: "admin allowed", cust: &customers.Customer{ID: 1, Role: customers.RoleAdmin}, want: http.StatusOK},
		{name: "customer forbidden", cust: &customers.Customer{ID: 2, Role: customers.RoleCustomer}, want: http.StatusForbidden},
		{name: "no identity forbidden", cust: nil, want: http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, _ := okHandler()
			req := httptest.NewRequest(http.MethodGet, "/statistics/users", nil)
			if tc.cust != nil {
				req = req.WithContext(withCustomer(req.Context(), tc.cust))
			}
			rec := httptest.NewRecorder()
			RequireAdmin(next).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
