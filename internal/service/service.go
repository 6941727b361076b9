// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/productcatalog/internal/messaging"
	"github.com/abgdnv/productcatalog/internal/messaging/events"
	"github.com/abgdnv/productcatalog/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*ProductDto, error)

	// Search returns products whose description equals text.
	// Returns an empty slice if nothing matches.
	Search(ctx context.Context, text string) ([]ProductDto, error)

	// Create adds a product exactly as given. The ID is not checked for uniqueness.
	Create(ctx context.Context, product ProductDto) (*ProductDto, error)

	// Update overwrites the name and description of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, product ProductDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID and returns it.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) (*ProductDto, error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	logger     *slog.Logger
	created    metric.Int64Counter
	updated    metric.Int64Counter
	deleted    metric.Int64Counter
	now        func() time.Time
}

// NewService creates a Service over repo. Events go to publisher; a nil publisher drops them.
// Publish failures are reported through logger.
func NewService(repo store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	meter := otel.Meter("product-catalog")
	return &Service{
		repository: repo,
		publisher:  publisher,
		logger:     logger.With("component", "service"),
		created:    mustCounter(meter, "products_created", "Total number of created products"),
		updated:    mustCounter(meter, "products_updated", "Total number of updated products"),
		deleted:    mustCounter(meter, "products_deleted", "Total number of deleted products"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func mustCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(fmt.Sprintf("failed to create %s counter: %v", name, err))
	}
	return counter
}

// ProductDto represents the data transfer object for a product.
// Name and Description are nullable and are never validated.
type ProductDto struct {
	ID          int     `json:"id"          validate:"min=0"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toDtos(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// Search retrieves products whose description equals text.
func (s *Service) Search(ctx context.Context, text string) ([]ProductDto, error) {
	products, err := s.repository.FindByDescription(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return toDtos(products), nil
}

// Create stores a new product and returns it as a ProductDto.
func (s *Service) Create(ctx context.Context, product ProductDto) (*ProductDto, error) {
	created, err := s.repository.Create(ctx, toModel(product))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(ctx, events.ProductCreatedEvent{Product: toSnapshot(created), OccurredAt: s.now()})
	s.created.Add(ctx, 1)

	return toDto(created), nil
}

// Update modifies an existing product's details and returns the updated product as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, product ProductDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, toModel(product))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", product.ID, err)
	}

	s.publish(ctx, events.ProductUpdatedEvent{Product: toSnapshot(updated), OccurredAt: s.now()})
	s.updated.Add(ctx, 1)

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID and returns the deleted product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int) (*ProductDto, error) {
	deleted, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}

	s.publish(ctx, events.ProductDeletedEvent{Product: toSnapshot(deleted), OccurredAt: s.now()})
	s.deleted.Add(ctx, 1)

	return toDto(deleted), nil
}

// publish sends the event. Failures are logged and not returned.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish product event", "subject", event.Subject(), "error", err)
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
	}
}

func toDtos(products []store.Product) []ProductDto {
	productDTOs := make([]ProductDto, len(products))
	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}
	return productDTOs
}

func toModel(dto ProductDto) store.Product {
	return store.Product{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
	}
}

func toSnapshot(product *store.Product) events.ProductSnapshot {
	return events.ProductSnapshot{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
	}
}
