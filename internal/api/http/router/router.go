package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/auth-service/internal/api/http/handler"
	"github.com/dtroode/auth-service/internal/api/http/middleware"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/metrics"
)

// Router mounts the auth routes together with health and metrics endpoints.
type Router struct {
	authService   handler.AuthService
	tokenVerifier handler.TokenVerifier
	metrics       *metrics.Metrics
	logger        *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	tokenVerifier handler.TokenVerifier,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:   authService,
		tokenVerifier: tokenVerifier,
		metrics:       metrics,
		logger:        logger,
	}
}

// Register builds the handler tree.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger, r.metrics)
	auth := handler.NewAuth(r.authService, r.tokenVerifier, r.metrics, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(logging.Handle)

	mux.Post("/signup", auth.Signup)
	mux.Post("/login", auth.Login)
	mux.Post("/verify-2fa", auth.VerifyTwoFA)
	mux.Post("/logout", auth.Logout)
	mux.Post("/verify-token", auth.VerifyToken)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", r.metrics.Handler())

	return mux
}
