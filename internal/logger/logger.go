// Package logger provides the slog handler used across the catalog.
package logger

import (
	"context"
	"log/slog"

	"github.com/abgdnv/productcatalog/internal/web"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

// ContextHandler decorates records with the ids found in the record's context:
// request_id from the HTTP middleware, and trace_id/span_id from the active span.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: handler}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := requestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.Handler.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return NewContextHandler(h.Handler.WithGroup(name))
}

// requestID prefers the id stored by web.RequestID and falls back to chi's.
func requestID(ctx context.Context) string {
	if id := web.RequestIDFrom(ctx); id != "" {
		return id
	}
	return middleware.GetReqID(ctx)
}
