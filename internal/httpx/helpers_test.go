package httpx

import (
	"context"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/banupriyaust/ClothStore/internal/customers"
	"github.com/banupriyaust/ClothStore/internal/orders"
)

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.data[key]
	return s, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) SetNX(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = value
	return true, nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type published struct {
	key     []byte
	value   []byte
	headers []kafkago.Header
}

type fakeProducer struct {
	mu   sync.Mutex
	msgs []published
}

func (p *fakeProducer) Publish(key, value []byte, headers ...kafkago.Header) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{key: key, value: value, headers: headers})
}

func (p *fakeProducer) published() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.msgs...)
}

type fakePlaceOrder struct {
	fn func(ctx context.Context, customerID, productID int64, quantity int) (*orders.Receipt, error)
}

func (f *fakePlaceOrder) PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (*orders.Receipt, error) {
	return f.fn(ctx, customerID, productID, quantity)
}

type fakeHistory struct {
	lines []orders.HistoryLine
	err   error
}

func (f *fakeHistory) ListByCustomer(context.Context, int64) ([]orders.HistoryLine, error) {
	return f.lines, f.err
}

// fakeCustomers backs both the auth middleware and the users handler.
type fakeCustomers struct {
	mu     sync.Mutex
	byID   map[int64]*customers.Customer
	hashes map[string]string // email -> bcrypt hash
	nextID int64
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{byID: map[int64]*customers.Customer{}, hashes: map[string]string{}}
}

func (f *fakeCustomers) add(c customers.Customer, passwordHash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cc := c
	f.byID[c.ID] = &cc
	f.hashes[c.Email] = passwordHash
	if c.ID > f.nextID {
		f.nextID = c.ID
	}
}

func (f *fakeCustomers) GetByID(_ context.Context, id int64) (*customers.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, customers.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomers) GetByEmail(_ context.Context, email string) (*customers.Customer, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.Email == email {
			return c, f.hashes[email], nil
		}
	}
	return nil, "", customers.ErrNotFound
}

func (f *fakeCustomers) Create(_ context.Context, firstName, lastName, email, passwordHash string) (*customers.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.Email == email {
			return nil, customers.ErrEmailTaken
		}
	}
	f.nextID++
	c := &customers.Customer{ID: f.nextID, FirstName: firstName, LastName: lastName, Email: email, Role: customers.RoleCustomer}
	f.byID[c.ID] = c
	f.hashes[email] = passwordHash
	return c, nil
}

func (f *fakeCustomers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return customers.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}
