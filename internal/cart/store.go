package cart

import (
	"context"
	"sync"
)

// Reducer is one cart transition, e.g. func(c Cart) Cart { return c.Add(sel) }.
type Reducer func(Cart) Cart

// Store holds one cart per owner (a signed-in shopper).
type Store interface {
	Get(ctx context.Context, owner string) (Cart, error)
	Update(ctx context.Context, owner string, fn Reducer) (Cart, error)
	Delete(ctx context.Context, owner string) error
}

// MemoryStore keeps carts in process memory. Carts are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]Cart)}
}

func (s *MemoryStore) Get(_ context.Context, owner string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[owner], nil
}

func (s *MemoryStore) Update(_ context.Context, owner string, fn Reducer) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.carts[owner])
	s.carts[owner] = next
	return next, nil
}

func (s *MemoryStore) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
	return nil
}
