package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ideascore-backend/internal/adapter/cache/memory"
	rediscache "github.com/heartmarshall/ideascore-backend/internal/adapter/cache/redis"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/metrics"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/postgres/artifact"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/provider/stub"
	"github.com/heartmarshall/ideascore-backend/internal/auth"
	"github.com/heartmarshall/ideascore-backend/internal/config"
	"github.com/heartmarshall/ideascore-backend/internal/provider"
	"github.com/heartmarshall/ideascore-backend/internal/service/credit"
	"github.com/heartmarshall/ideascore-backend/internal/service/generation"
	"github.com/heartmarshall/ideascore-backend/internal/transport/middleware"
	"github.com/heartmarshall/ideascore-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// Postgres and the balance cache, wires the services and serves HTTP until
// ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("unmetered", cfg.Credits.Unmetered),
		slog.String("cache", cfg.Cache.Driver),
		slog.String("generator", cfg.Generator.Provider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	health := map[string]rest.Pinger{"database": pool}

	cache, closeCache, err := newBalanceCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()
	if p, ok := cache.(rest.Pinger); ok {
		health["cache"] = p
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, logger)
	defer limiter.Stop()

	router := newHandler(logger, cfg, pool, cache, newGenerator(cfg.Generator), limiter, health)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// balanceCache is the cache surface shared by both services.
type balanceCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// newBalanceCache builds the configured cache and returns its release func.
func newBalanceCache(ctx context.Context, cfg *config.Config) (balanceCache, func(), error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		client, err := rediscache.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return rediscache.New(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil
	default:
		c := memory.New(memory.WithCapacity(cfg.Cache.MaxEntries))
		return c, c.Stop, nil
	}
}

func newGenerator(cfg config.GeneratorConfig) provider.Generator {
	if cfg.Provider == config.GeneratorProviderAnthropic {
		return anthropic.New(cfg)
	}
	return stub.New()
}

// newHandler wires repositories, services and transport into the HTTP
// handler served by Run.
func newHandler(
	logger *slog.Logger,
	cfg *config.Config,
	pool *pgxpool.Pool,
	cache balanceCache,
	gen provider.Generator,
	limiter *middleware.RateLimiter,
	health map[string]rest.Pinger,
) http.Handler {
	m := metrics.New()
	policy := credit.NewPolicy(cfg.Credits)

	accounts := account.New(pool)
	entries := ledger.New(pool)

	creditSvc := credit.NewService(logger, accounts, entries, cache, postgres.NewTxManager(pool), policy, m, credit.Settings{
		DefaultBalance: cfg.Credits.DefaultBalance,
		BalanceTTL:     cfg.Cache.BalanceTTL,
		MaxRetries:     cfg.Credits.MaxBalanceRetries,
	})

	generationSvc := generation.NewService(logger, accounts, entries, artifact.New(pool), cache, gen, policy, m, generation.Settings{
		GenerateTimeout:     cfg.Generator.Timeout,
		CompensationTimeout: cfg.Generator.CompensationTimeout,
		MaxRetries:          cfg.Credits.MaxBalanceRetries,
	})

	return rest.NewRouter(rest.RouterDeps{
		Health:     rest.NewHealthHandler(health, BuildVersion()),
		Credit:     rest.NewCreditHandler(creditSvc, logger),
		Generation: rest.NewGenerationHandler(generationSvc, logger),
		Admin:      rest.NewAdminHandler(creditSvc, logger),
		Tokens:     auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL),
		Limiter:    limiter,
		Metrics:    m,
		CORS:       cfg.CORS,
		Logger:     logger,
	})
}
