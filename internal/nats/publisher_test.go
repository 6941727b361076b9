package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abgdnv/productcatalog/internal/messaging"
	"github.com/abgdnv/productcatalog/internal/messaging/events"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	subject string
	payload []byte
	err     error
}

func (f *fakeStream) Publish(_ context.Context, subject string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.subject = subject
	f.payload = payload
	if f.err != nil {
		return nil, f.err
	}
	return &jetstream.PubAck{Stream: "PRODUCTS", Sequence: 1}, nil
}

type brokenEvent struct{}

func (brokenEvent) Subject() string { return "products.broken" }

func (brokenEvent) Payload() ([]byte, error) { return nil, errors.New("encode failed") }

func Test_Publisher_Publish(t *testing.T) {
	name := "Mazda 2"
	event := events.ProductCreatedEvent{
		Product:    events.ProductSnapshot{ID: 6, Name: &name},
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("publishes payload to event subject", func(t *testing.T) {
		// given
		stream := &fakeStream{}
		p := &Publisher{js: stream}
		// when
		err := p.Publish(context.Background(), event)
		// then
		require.NoError(t, err)
		assert.Equal(t, messaging.ProductsCreatedSubject, stream.subject)
		var decoded events.ProductCreatedEvent
		require.NoError(t, json.Unmarshal(stream.payload, &decoded))
		assert.Equal(t, event, decoded)
		assert.Nil(t, decoded.Product.Description)
	})

	t.Run("broker error is returned", func(t *testing.T) {
		brokerErr := errors.New("no responders")
		p := &Publisher{js: &fakeStream{err: brokerErr}}

		err := p.Publish(context.Background(), event)

		assert.ErrorIs(t, err, brokerErr)
	})

	t.Run("payload error stops publishing", func(t *testing.T) {
		stream := &fakeStream{}
		p := &Publisher{js: stream}

		err := p.Publish(context.Background(), brokenEvent{})

		require.Error(t, err)
		assert.Empty(t, stream.subject)
	})
}
