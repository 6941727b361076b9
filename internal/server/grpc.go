package server

import (
	"context"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// RegistrationFunc registers a service with the server.
type RegistrationFunc func(*grpc.Server)

// NewGRPCServer creates a gRPC server that logs every finished call through logger
// and answers handler panics with codes.Internal.
func NewGRPCServer(logger *slog.Logger, enableReflection bool, register ...RegistrationFunc) *grpc.Server {
	callLogger := logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		logger.Log(ctx, slog.Level(lvl), msg, fields...)
	})
	logOpts := []logging.Option{logging.WithLogOnEvents(logging.FinishCall)}
	recoverOpts := []recovery.Option{
		recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "Recovered from gRPC handler panic", "panic", p)
			return status.Error(codes.Internal, "internal error")
		}),
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(callLogger, logOpts...),
			recovery.UnaryServerInterceptor(recoverOpts...),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(callLogger, logOpts...),
			recovery.StreamServerInterceptor(recoverOpts...),
		),
	)
	if enableReflection {
		reflection.Register(srv)
	}
	for _, fn := range register {
		fn(srv)
	}
	return srv
}
