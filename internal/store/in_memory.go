package store

import (
	"context"
	"slices"
	"sync"

	"github.com/abgdnv/productcatalog/internal/errors"
)

// inMemory implements ProductStore using an ordered in-memory slice.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
}

// NewInMemoryStore creates a new instance of ProductStore seeded with the default catalog.
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: seedProducts(),
	}
}

// FindAll retrieves all products.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p.clone())
	}
	return list, nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := s.products[i].clone()
	return &p, nil
}

// FindByDescription retrieves products whose description is exactly text.
// Products without a description never match.
func (s *inMemory) FindByDescription(_ context.Context, text string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0)
	for _, p := range s.products {
		if p.Description != nil && *p.Description == text {
			list = append(list, p.clone())
		}
	}
	return list, nil
}

// Create appends a product and returns it.
func (s *inMemory) Create(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, product.clone())

	created := product.clone()
	return &created, nil
}

// Update overwrites name and description of an existing product and returns it.
func (s *inMemory) Update(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(product.ID)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	s.products[i].Name = cloneString(product.Name)
	s.products[i].Description = cloneString(product.Description)

	updated := s.products[i].clone()
	return &updated, nil
}

// DeleteByID deletes a product by its ID and returns the removed product.
func (s *inMemory) DeleteByID(_ context.Context, id int) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	deleted := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)
	return &deleted, nil
}

// Count returns the number of products.
func (s *inMemory) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products)
}

// indexOf returns the position of the first product with the given ID, or -1.
// Callers must hold the lock.
func (s *inMemory) indexOf(id int) int {
	return slices.IndexFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
}
