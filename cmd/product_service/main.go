// Package main runs the product catalog service: REST API, gRPC health and optional pprof.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abgdnv/productcatalog/internal/app"
	"github.com/abgdnv/productcatalog/internal/bootstrap"
	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/config/configloader"
	"github.com/abgdnv/productcatalog/internal/telemetry"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const serviceName = "product"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("product catalog stopped with error: %v", err)
		os.Exit(1)
	}
	log.Println("product catalog stopped")
}

// listener is a server run by the errgroup: serve blocks until the server ends,
// stop is called once the group context is done.
type listener struct {
	name  string
	serve func() error
	stop  func(context.Context) error
}

func run(ctx context.Context) error {
	cfg, err := configloader.Load[config.Config](serviceName)
	if err != nil {
		return err
	}
	log.Printf("Loaded configuration:\n%s", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	shutdownTelemetry, metricsHandler, err := telemetry.Setup(ctx, serviceName, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer withTimeout(cfg.Shutdown.Timeout, func(ctx context.Context) {
		if err := shutdownTelemetry(ctx); err != nil {
			logger.Error("Telemetry shutdown failed", "error", err)
		}
	})

	publisher, closePublisher, err := bootstrap.NewPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	deps := app.SetupDependencies(publisher, metricsHandler, logger)
	listeners := []listener{
		httpListener("http", app.SetupHttpServer(deps, cfg.HTTP)),
		grpcListener(cfg.GRPC, deps),
	}
	if cfg.PProf.Enabled {
		listeners = append(listeners, httpListener("pprof", &http.Server{
			Addr:              cfg.PProf.Addr,
			Handler:           http.DefaultServeMux,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}))
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, l := range listeners {
		g.Go(func() error {
			if err := l.serve(); err != nil {
				return fmt.Errorf("%s server: %w", l.name, err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Stopping server", "server", l.name)
			var err error
			withTimeout(cfg.Shutdown.Timeout, func(ctx context.Context) { err = l.stop(ctx) })
			return err
		})
	}
	return g.Wait()
}

func httpListener(name string, srv *http.Server) listener {
	return listener{
		name: name,
		serve: func() error {
			slog.Info("Server listening", "server", name, "addr", srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		stop: srv.Shutdown,
	}
}

// grpcListener marks the catalog SERVING once the port is bound and NOT_SERVING before draining.
func grpcListener(cfg config.GRPCConfig, deps *app.Dependencies) listener {
	srv := app.SetupGrpcServer(deps, cfg)
	return listener{
		name: "grpc",
		serve: func() error {
			lis, err := net.Listen("tcp", cfg.Addr())
			if err != nil {
				return err
			}
			slog.Info("Server listening", "server", "grpc", "addr", cfg.Addr())
			deps.Health.MarkServing(context.Background())
			return srv.Serve(lis)
		},
		stop: func(ctx context.Context) error {
			deps.Health.Shutdown()
			return gracefulStop(ctx, srv)
		},
	}
}

// gracefulStop drains srv and forces it closed when ctx expires first.
func gracefulStop(ctx context.Context, srv *grpc.Server) error {
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		srv.Stop()
		return fmt.Errorf("grpc graceful stop: %w", ctx.Err())
	}
}

func withTimeout(timeout time.Duration, fn func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	fn(ctx)
}
