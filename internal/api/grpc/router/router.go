package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/auth-service/internal/api/grpc/handler"
	"github.com/dtroode/auth-service/internal/api/grpc/middleware"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/metrics"
)

// Router represents a gRPC router for service-to-service token verification.
type Router struct {
	tokenVerifier handler.TokenVerifier
	metrics       *metrics.Metrics
	logger        *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	tokenVerifier handler.TokenVerifier,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		tokenVerifier: tokenVerifier,
		metrics:       metrics,
		logger:        logger,
	}
}

// Register registers all gRPC services and middleware.
// Panics in handlers are reported as Internal and logged by the logging interceptor.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger, r.metrics)
	recoveryOpt := recovery.WithRecoveryHandler(func(p any) error {
		r.logger.Error("gRPC handler panicked",
			"panic", p)
		return status.Error(codes.Internal, "Unexpected error")
	})

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)
	handler.RegisterTokenVerifierServer(s, handler.NewVerifier(r.tokenVerifier, r.logger))

	return s
}
