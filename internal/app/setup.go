// Package app wires the product catalog's store, service and transports together.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/messaging"
	"github.com/abgdnv/productcatalog/internal/server"
	"github.com/abgdnv/productcatalog/internal/service"
	"github.com/abgdnv/productcatalog/internal/store"
	grpcImpl "github.com/abgdnv/productcatalog/internal/transport/grpc"
	"github.com/abgdnv/productcatalog/internal/transport/rest"
	"google.golang.org/grpc"
)

const serverOperation = "product-catalog"

type Dependencies struct {
	ProductStore   store.ProductStore
	ProductService service.ProductService
	Health         *grpcImpl.Health
	Metrics        http.Handler
	Logger         *slog.Logger
}

// SetupDependencies builds a freshly seeded catalog and the service on top of it.
// metrics may be nil, in which case /metrics is not exposed.
func SetupDependencies(publisher messaging.Publisher, metrics http.Handler, logger *slog.Logger) *Dependencies {
	productStore := store.NewInMemoryStore()
	return &Dependencies{
		ProductStore:   productStore,
		ProductService: service.NewService(productStore, publisher, logger),
		Health:         grpcImpl.NewHealth(productStore, logger),
		Metrics:        metrics,
		Logger:         logger,
	}
}

// SetupHttpHandler builds the router with the product routes and, when metrics are set, /metrics.
// The end-to-end tests serve it through httptest.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	r := server.NewRouter(deps.Logger)
	rest.NewHandler(deps.ProductService, deps.Logger).RegisterRoutes(r)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	return r
}

// SetupHttpServer creates the REST server listening on cfg.Port.
func SetupHttpServer(deps *Dependencies, cfg config.HTTPConfig) *http.Server {
	return server.NewHTTPServer(cfg, SetupHttpHandler(deps), serverOperation)
}

// SetupGrpcServer creates the gRPC server with the catalog health service registered.
func SetupGrpcServer(deps *Dependencies, cfg config.GRPCConfig) *grpc.Server {
	return server.NewGRPCServer(deps.Logger, cfg.Reflection, deps.Health.Register)
}
