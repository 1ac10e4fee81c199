package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MisakSofoyan1/product-app/internal/engine"
	"github.com/MisakSofoyan1/product-app/internal/service"
	"github.com/MisakSofoyan1/product-app/pkg/health"
	"github.com/MisakSofoyan1/product-app/pkg/middleware"
)

// RouterOptions carries the optional parts of the storefront router.
type RouterOptions struct {
	CORS        middleware.CORSConfig
	RateLimiter *middleware.RateLimiter
	// PprofCIDRs enables /debug/pprof for the listed networks.
	PprofCIDRs  []string
	WaitTimeout time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	sessions *service.SessionService,
	healthHandler *health.Handler,
	opts RouterOptions,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.CORS(opts.CORS))
	r.Use(chimw.Compress(5))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if len(opts.PprofCIDRs) > 0 {
		middleware.RegisterPprof(r, opts.PprofCIDRs, logger)
	}

	sessionHandler := NewSessionHandler(sessions, logger, opts.WaitTimeout)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Use(middleware.NoStore)
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Handler)
		}

		r.Post("/", sessionHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.SessionLogger("id"))

			r.Get("/", sessionHandler.Get)
			r.Delete("/", sessionHandler.Delete)
			r.Post("/filters/toggle", sessionHandler.Toggle)
			r.Post("/filters/clear", sessionHandler.ClearAll)
			r.Post("/ranges/{dimension}/drag", sessionHandler.Drag)
			r.Post("/ranges/{dimension}/commit", sessionHandler.Commit)
			r.Delete("/ranges/{dimension}", sessionHandler.ClearRange)
			r.Put("/page", sessionHandler.SetPage)
			r.Put("/limit", sessionHandler.SetLimit)
			r.Post("/facets/refresh", sessionHandler.RefreshFacets)
		})
	})

	return r
}

// NewCatalogRouter creates the router of the reference catalog API.
func NewCatalogRouter(catalog engine.Catalog, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	r.Get("/health/live", health.NewHandler().LivenessHandler())
	r.Handle("/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(catalog, logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(30))
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/filters", catalogHandler.Filters)
	})

	return r
}
