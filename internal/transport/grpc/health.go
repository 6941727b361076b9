// Package grpc exposes the product catalog over gRPC.
package grpc

import (
	"context"
	"log/slog"

	"github.com/abgdnv/productcatalog/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name the catalog reports its status under in grpc.health.v1.Health.
const ServiceName = "product.v1.ProductCatalog"

// Health reports catalog readiness through the standard gRPC health service.
type Health struct {
	server *health.Server
	store  store.ProductStore
	logger *slog.Logger
}

// NewHealth creates a Health that reports NOT_SERVING until MarkServing is called.
func NewHealth(store store.ProductStore, logger *slog.Logger) *Health {
	srv := health.NewServer()
	srv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Health{
		server: srv,
		store:  store,
		logger: logger.With("component", "grpc-health"),
	}
}

// Register registers the health service with s.
func (h *Health) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
}

// MarkServing switches the catalog status to SERVING.
func (h *Health) MarkServing(ctx context.Context) {
	h.server.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	h.logger.InfoContext(ctx, "Product catalog is serving", "products", h.store.Count(ctx))
}

// Shutdown sets every service to NOT_SERVING and ignores later status updates.
func (h *Health) Shutdown() {
	h.server.Shutdown()
}
