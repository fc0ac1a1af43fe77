package catalog

import (
	"context"
	"slices"
	"sync"
)

// MemStore keeps products in insertion order. Ids come from a monotonic
// counter, so an id freed by Remove is never handed out again.
type MemStore struct {
	mu     sync.RWMutex
	items  []Product
	nextID int
}

func NewMemStore(seed ...Product) *MemStore {
	s := &MemStore{
		items:  make([]Product, 0, len(seed)),
		nextID: 1,
	}
	for _, p := range seed {
		s.items = append(s.items, p.clone())
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListAll(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p.clone())
	}
	return out, nil
}

func (s *MemStore) FindByID(ctx context.Context, id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}
	return s.items[i].clone(), nil
}

func (s *MemStore) Insert(ctx context.Context, p Product) (Product, error) {
	if !p.Valid() {
		return Product{}, ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p = p.clone()
	p.ID = s.nextID
	s.nextID++
	s.items = append(s.items, p)

	return p.clone(), nil
}

// Replace reports ErrNotFound before looking at the fields, so a missing id
// wins over a blank name.
func (s *MemStore) Replace(ctx context.Context, id int, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if !p.Valid() {
		return ErrInvalidProduct
	}

	p = p.clone()
	cur := &s.items[i]
	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	return nil
}

func (s *MemStore) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// indexOf expects s.mu to be held.
func (s *MemStore) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
