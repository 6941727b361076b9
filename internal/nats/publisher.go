package nats

import (
	"context"
	"fmt"

	"github.com/abgdnv/productcatalog/internal/messaging"
	"github.com/nats-io/nats.go/jetstream"
)

var _ messaging.Publisher = (*Publisher)(nil)

// streamPublisher is the part of jetstream.JetStream used to publish events.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher sends each event to the stream subject named by the event.
type Publisher struct {
	js streamPublisher
}

func (p *Publisher) Publish(ctx context.Context, event messaging.Event) error {
	data, err := event.Payload()
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Subject(), err)
	}
	if _, err = p.js.Publish(ctx, event.Subject(), data); err != nil {
		return fmt.Errorf("publish %s: %w", event.Subject(), err)
	}
	return nil
}
