package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/logger"
	"github.com/abgdnv/productcatalog/internal/messaging"
	"github.com/abgdnv/productcatalog/internal/nats"
)

// NewLogger creates a new slog.Logger instance with the specified log level.
func NewLogger(level string) *slog.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := logger.NewContextHandler(slog.NewJSONHandler(w, loggerOpts))
	return slog.New(logHandler)
}

// productSubjects is captured by the product events stream.
var productSubjects = []string{"products.>"}

// NewPublisher connects to NATS and returns a JetStream publisher for product events,
// or a no-op publisher when messaging is disabled. The returned func closes the connection.
func NewPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Enabled {
		return messaging.NopPublisher{}, func() {}, nil
	}
	conn, err := nats.Connect(cfg.URL, cfg.Timeout, logger)
	if err != nil {
		return nil, nil, err
	}
	streamCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := conn.EnsureStream(streamCtx, cfg.Stream, productSubjects); err != nil {
		conn.Close()
		return nil, nil, err
	}
	logger.Info("Publishing product events", "stream", cfg.Stream)
	return conn.Publisher(), conn.Close, nil
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
