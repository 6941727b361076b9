// Package nats publishes product events to a NATS JetStream stream.
package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const clientName = "product-catalog"

// Connection is a NATS connection together with its JetStream context.
type Connection struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// Connect dials url and reports connection state changes through logger.
func Connect(url string, timeout time.Duration, logger *slog.Logger) (*Connection, error) {
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.Timeout(timeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", "url", c.ConnectedUrlRedacted())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("open jetstream: %w", err)
	}
	return &Connection{nc: nc, js: js}, nil
}

// EnsureStream creates the stream that captures subjects, or updates it if it already exists.
func (c *Connection) EnsureStream(ctx context.Context, name string, subjects []string) error {
	if _, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{Name: name, Subjects: subjects}); err != nil {
		return fmt.Errorf("create or update stream %s: %w", name, err)
	}
	return nil
}

func (c *Connection) Publisher() *Publisher {
	return &Publisher{js: c.js}
}

func (c *Connection) Close() {
	c.nc.Close()
}
