package orders

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// memStore implements Placer with the same contract as the pgx repo: the
// mutex plays the role of the product row lock, so concurrent placements on
// the same product serialize around the read-check-decrement sequence.
type memStore struct {
	mu       sync.Mutex
	products map[int64]*memProduct
	orders   []memOrder
	nextID   int64
	calls    int
}

type memProduct struct {
	name  string
	price decimal.Decimal
	stock int
}

type memOrder struct {
	id        int64
	customer  int64
	productID int64
	quantity  int
	unitPrice decimal.Decimal
}

func newMemStore() *memStore {
	return &memStore{products: map[int64]*memProduct{}}
}

func (s *memStore) addProduct(id int64, name string, price string, stock int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = &memProduct{name: name, price: decimal.RequireFromString(price), stock: stock}
}

func (s *memStore) setPrice(id int64, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id].price = decimal.RequireFromString(price)
}

func (s *memStore) stock(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].stock
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *memStore) PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (*Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	if p.stock < quantity {
		return nil, ErrInsufficientStock
	}

	p.stock -= quantity
	s.nextID++
	o := memOrder{
		id:        s.nextID,
		customer:  customerID,
		productID: productID,
		quantity:  quantity,
		unitPrice: p.price,
	}
	s.orders = append(s.orders, o)

	return &Placement{
		OrderID:     o.id,
		CustomerID:  customerID,
		CreatedAt:   time.Now().UTC(),
		ProductID:   productID,
		ProductName: p.name,
		UnitPrice:   o.unitPrice,
		Quantity:    quantity,
	}, nil
}
