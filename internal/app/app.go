package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/MisakSofoyan1/product-app/internal/catalogapi"
	"github.com/MisakSofoyan1/product-app/internal/config"
	handler "github.com/MisakSofoyan1/product-app/internal/handler/http"
	"github.com/MisakSofoyan1/product-app/internal/service"
	"github.com/MisakSofoyan1/product-app/pkg/database"
	"github.com/MisakSofoyan1/product-app/pkg/health"
	"github.com/MisakSofoyan1/product-app/pkg/httpclient"
	"github.com/MisakSofoyan1/product-app/pkg/middleware"
	"github.com/MisakSofoyan1/product-app/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	sessions       *service.SessionService
	rateLimiter    *middleware.RateLimiter
	redis          *redis.Client
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Upstream client: retries inside, breaker outside.
	transport := httpclient.DefaultConfig()
	transport.Timeout = cfg.UpstreamTimeout()
	transport.MaxRetries = cfg.UpstreamMaxRetries

	cbCfg := httpclient.DefaultCircuitBreakerConfig("catalog-api")
	cbCfg.FailureRatio = cfg.CBFailureRatio
	cbCfg.MinRequests = cfg.CBMinRequests
	cbCfg.Timeout = cfg.CBOpenTimeout

	breaker := httpclient.NewCircuitBreakerClient(httpclient.New(transport), cbCfg, logger).
		WithFallback(catalogapi.CircuitOpenFallback)

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("catalog-api", breaker.Ping)

	// Optional shared facet cache.
	var (
		clientOpts  []catalogapi.Option
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("facet cache disabled, redis unreachable", slog.String("error", err.Error()))
		} else {
			database.SetSlowCommandLogging(cfg.Redis.SlowThreshold, logger)
			if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, redisClient, cfg.Tracing.ServiceName); err != nil {
				logger.Warn("redis pool metrics not registered", slog.String("error", err.Error()))
			}

			cache := catalogapi.NewRedisFacetCache(redisClient, cfg.CatalogAPIURL, cfg.FacetCacheTTL())
			clientOpts = append(clientOpts, catalogapi.WithFacetCache(cache))
			healthHandler.RegisterNonCritical("redis", database.RedisChecker(redisClient))
			logger.Info("facet cache enabled",
				slog.String("addr", cfg.Redis.Addr()),
				slog.Duration("ttl", cfg.FacetCacheTTL()),
			)
		}
	}

	client := catalogapi.New(cfg.CatalogAPIURL, breaker, logger, clientOpts...)
	sessions := service.NewSessionService(client, logger, cfg.SessionTTL(), cfg.DefaultPageLimit)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	cors.Environment = cfg.Environment

	router := handler.NewRouter(sessions, healthHandler, handler.RouterOptions{
		CORS:        cors,
		RateLimiter: rateLimiter,
		PprofCIDRs:  cfg.PprofAllowedCIDRs,
		WaitTimeout: cfg.UpstreamTimeout(),
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		sessions:       sessions,
		rateLimiter:    rateLimiter,
		redis:          redisClient,
		tracerShutdown: tracerShutdown,
		httpServer:     httpServer,
	}, nil
}

// Handler returns the HTTP handler of the service.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and background workers, blocking until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	workers, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	go a.sessions.Run(workers, sweepInterval(a.cfg.SessionTTL()))
	if a.rateLimiter != nil {
		go a.rateLimiter.Run(workers.Done())
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("catalog_api", a.cfg.CatalogAPIURL),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return errors.Join(err, a.Shutdown())
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

	a.sessions.Close()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
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

// sweepInterval checks for idle sessions twice per TTL, at most once a
// minute.
func sweepInterval(ttl time.Duration) time.Duration {
	return max(min(ttl/2, time.Minute), time.Second)
}
