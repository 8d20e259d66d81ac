package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sdk788-art/ec-agent/internal/assistant"
	"github.com/sdk788-art/ec-agent/internal/catalog"
	"github.com/sdk788-art/ec-agent/internal/config"
	"github.com/sdk788-art/ec-agent/internal/dataset"
	"github.com/sdk788-art/ec-agent/internal/gencache"
	handler "github.com/sdk788-art/ec-agent/internal/handler/http"
	"github.com/sdk788-art/ec-agent/internal/insight"
	"github.com/sdk788-art/ec-agent/internal/session"
	"github.com/sdk788-art/ec-agent/pkg/database"
	"github.com/sdk788-art/ec-agent/pkg/health"
	"github.com/sdk788-art/ec-agent/pkg/middleware"
	"github.com/sdk788-art/ec-agent/pkg/tracing"
)

// App wires together all dependencies and runs the assistant service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	redisClient    *redis.Client
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Distributed tracing.
	tracingCfg := tracing.DefaultConfig("ec-agent")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTELEndpoint
	tracingCfg.SampleRate = cfg.OTELSampleRate
	tracingCfg.Enabled = cfg.OTELEnabled

	tracerShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// The dataset is immutable for the lifetime of the process.
	store, err := dataset.Load(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	// Generated-text cache backend.
	var cache gencache.Cache
	var redisClient *redis.Client
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		redisClient, err = database.NewRedisClient(ctx, database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		cache = gencache.NewRedis(redisClient, cfg.CacheTTL())
		logger.Info("redis generated-text cache initialized",
			slog.String("host", cfg.RedisHost),
			slog.Int("port", cfg.RedisPort),
		)
	default:
		cache = gencache.NewMemory(cfg.CacheTTL())
		logger.Info("in-memory generated-text cache initialized")
	}

	// Generation client and domain services.
	completionClient := assistant.NewClient(assistant.ClientConfig{
		BaseURL: cfg.GenBaseURL,
		APIKey:  cfg.GenAPIKey,
		Model:   cfg.GenModel,
		Timeout: cfg.GenTimeout(),
	}, logger)
	assistantSvc := assistant.NewService(completionClient, logger)

	engine := catalog.NewEngine(store, logger)
	insightSvc := insight.NewService(store, logger)
	sessions := session.NewManager(cache, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	// A lost cache only costs extra generation calls, so redis is non-critical.
	if redisClient != nil {
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// HTTP router.
	router := handler.NewRouter(
		handler.NewSearchHandler(assistantSvc, engine, store, sessions, logger),
		handler.NewProductHandler(engine, insightSvc, assistantSvc, cache, store, sessions, logger),
		handler.NewCustomerHandler(store, logger),
		handler.NewSessionHandler(sessions, store, logger),
		healthHandler,
		middleware.DefaultCORSConfig(),
		logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		redisClient:    redisClient,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
