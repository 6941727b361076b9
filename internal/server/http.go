// Package server builds the HTTP and gRPC servers of the product catalog.
package server

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPServer creates an http.Server from cfg. Every request runs inside an
// OpenTelemetry server span named after operation.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler, operation string) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(handler, operation),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// NewRouter returns a chi router that assigns request ids, logs each request
// and recovers panics, in that order.
func NewRouter(logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		web.RequestID,
		web.AccessLog(logger),
		web.Recoverer(logger),
	)
	return r
}
