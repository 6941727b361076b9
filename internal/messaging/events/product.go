package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/productcatalog/internal/messaging"
)

// ProductSnapshot is the state of a product carried by product events.
type ProductSnapshot struct {
	ID          int     `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ProductCreatedEvent struct {
	Product    ProductSnapshot `json:"product"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e ProductCreatedEvent) Subject() string {
	return messaging.ProductsCreatedSubject
}

func (e ProductCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductUpdatedEvent struct {
	Product    ProductSnapshot `json:"product"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e ProductUpdatedEvent) Subject() string {
	return messaging.ProductsUpdatedSubject
}

func (e ProductUpdatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductDeletedEvent struct {
	Product    ProductSnapshot `json:"product"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e ProductDeletedEvent) Subject() string {
	return messaging.ProductsDeletedSubject
}

func (e ProductDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
