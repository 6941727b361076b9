// Package store provides an interface for product storage operations.
package store

import "context"

// Product represents a product entity in the store.
// Name and Description are nullable; nil means the value is absent.
type Product struct {
	ID          int
	Name        *string
	Description *string
}

// ProductStore is an interface for product storage operations.
// Products are kept in insertion order. IDs are supplied by callers and are not required to be unique;
// lookups, updates and deletes act on the first product with a matching ID.
type ProductStore interface {
	// FindAll returns all products in insertion order.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID retrieves the first product with the given ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*Product, error)

	// FindByDescription returns every product whose description equals text.
	// Returns an empty slice if nothing matches.
	FindByDescription(ctx context.Context, text string) ([]Product, error)

	// Create appends the product as-is and returns it.
	Create(ctx context.Context, product Product) (*Product, error)

	// Update overwrites the name and description of the product with the same ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, product Product) (*Product, error)

	// DeleteByID removes the product with the given ID and returns it.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) (*Product, error)

	// Count returns the number of products held.
	Count(ctx context.Context) int
}

// clone returns a copy of p that shares no pointers with it.
func (p Product) clone() Product {
	return Product{
		ID:          p.ID,
		Name:        cloneString(p.Name),
		Description: cloneString(p.Description),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
