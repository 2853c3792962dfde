package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc/reflection"

	grpcRouter "github.com/dtroode/auth-service/internal/api/grpc/router"
	grpcServer "github.com/dtroode/auth-service/internal/api/grpc/server"
	httpRouter "github.com/dtroode/auth-service/internal/api/http/router"
	httpServer "github.com/dtroode/auth-service/internal/api/http/server"
	"github.com/dtroode/auth-service/internal/config"
	"github.com/dtroode/auth-service/internal/email"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/metrics"
	"github.com/dtroode/auth-service/internal/model"
	"github.com/dtroode/auth-service/internal/password"
	"github.com/dtroode/auth-service/internal/repository/memory"
	"github.com/dtroode/auth-service/internal/repository/postgres"
	"github.com/dtroode/auth-service/internal/repository/redis"
	"github.com/dtroode/auth-service/internal/server"
	"github.com/dtroode/auth-service/internal/service"
	"github.com/dtroode/auth-service/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

// stores holds the selected store backends and the connections they need closed.
type stores struct {
	users        model.UserStore
	bannedTokens model.BannedTokenStore
	twoFACodes   model.TwoFACodeStore
	closers      []io.Closer
}

func (s *stores) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	hasher := password.NewHasher(
		model.NewKDFParams(cfg.KDF.Time, cfg.KDF.MemKiB, cfg.KDF.Par),
		cfg.KDF.MaxConcurrency,
	)

	st, err := openStores(ctx, cfg, hasher)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.Close()

	tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL), st.bannedTokens, logger)
	authService := service.NewAuth(st.users, st.twoFACodes, email.NewLogClient(logger), hasher, tokenService, logger)

	sl, err := securityLayer(cfg.HTTP)
	if err != nil {
		logger.Fatal("failed to initialize security layer", "error", err)
	}

	m := metrics.New()
	servers := []model.Server{
		httpServer.NewHTTPServer(httpRouter.New(authService, tokenService, m, logger).Register(), cfg.HTTP.Addr),
		registerGRPCServer(tokenService, m, logger, fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config, hasher model.PasswordHasher) (*stores, error) {
	st := &stores{}

	switch cfg.Store.Users {
	case config.BackendPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		st.closers = append(st.closers, db)
		st.users = postgres.NewUserRepository(db, hasher)
	default:
		st.users = memory.NewUserStore(hasher)
	}

	if cfg.Store.BannedTokens == config.BackendRedis || cfg.Store.TwoFACodes == config.BackendRedis {
		client, err := redis.NewConnection(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		st.closers = append(st.closers, client)

		if cfg.Store.BannedTokens == config.BackendRedis {
			st.bannedTokens = redis.NewBannedTokenRepository(client, cfg.JWT.TTL)
		}
		if cfg.Store.TwoFACodes == config.BackendRedis {
			st.twoFACodes = redis.NewTwoFACodeRepository(client, cfg.TwoFA.TTL)
		}
	}
	if st.bannedTokens == nil {
		st.bannedTokens = memory.NewBannedTokenStore(cfg.JWT.TTL)
	}
	if st.twoFACodes == nil {
		st.twoFACodes = memory.NewTwoFACodeStore(cfg.TwoFA.TTL)
	}

	return st, nil
}

func securityLayer(cfg config.HTTP) (model.SecurityLayer, error) {
	if cfg.EnableHTTPS {
		return server.NewTLSListener(cfg.CertFileName, cfg.PrivateKeyFileName)
	}
	return server.NewPlainListener(), nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerGRPCServer(
	tokenService *service.TokenService,
	m *metrics.Metrics,
	logger *logger.Logger,
	addr string,
) *grpcServer.GRPCServer {
	s := grpcRouter.New(tokenService, m, logger).Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}
