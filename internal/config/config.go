package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/MisakSofoyan1/product-app/internal/domain"
	pkgconfig "github.com/MisakSofoyan1/product-app/pkg/config"
	"github.com/MisakSofoyan1/product-app/pkg/database"
	"github.com/MisakSofoyan1/product-app/pkg/tracing"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8020"`

	// Upstream catalog API
	CatalogAPIURL          string        `env:"CATALOG_API_URL" envDefault:"http://localhost:8030"`
	UpstreamTimeoutSeconds int           `env:"UPSTREAM_TIMEOUT_SECONDS" envDefault:"10"`
	UpstreamMaxRetries     int           `env:"UPSTREAM_MAX_RETRIES" envDefault:"2"`
	CBFailureRatio         float64       `env:"CB_FAILURE_RATIO" envDefault:"0.6"`
	CBMinRequests          uint32        `env:"CB_MIN_REQUESTS" envDefault:"5"`
	CBOpenTimeout          time.Duration `env:"CB_OPEN_TIMEOUT" envDefault:"15s"`

	// Sessions
	DefaultPageLimit  int `env:"DEFAULT_PAGE_LIMIT" envDefault:"10"`
	SessionTTLMinutes int `env:"SESSION_TTL_MINUTES" envDefault:"30"`

	// Facet cache
	Redis                database.RedisConfig `envPrefix:"REDIS_"`
	FacetCacheTTLSeconds int                  `env:"FACET_CACHE_TTL_SECONDS" envDefault:"300"`

	// HTTP edge
	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"40"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowedCIDRs  []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`

	// Tracing
	Tracing tracing.Config `envPrefix:"OTEL_"`
}

// Load reads configuration from a .env file, when present, and the
// environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadWithDotenv(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "storefront"
	}
	cfg.Tracing.Environment = cfg.Environment
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpstreamTimeout is the per-request timeout of catalog API calls.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// SessionTTL is how long an unused session is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// FacetCacheTTL is how long a cached facet catalog stays valid.
func (c *Config) FacetCacheTTL() time.Duration {
	return time.Duration(c.FacetCacheTTLSeconds) * time.Second
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if u, err := url.Parse(c.CatalogAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid CATALOG_API_URL: %q", c.CatalogAPIURL)
	}
	if c.UpstreamTimeoutSeconds < 1 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be positive, got %d", c.UpstreamTimeoutSeconds)
	}
	if c.UpstreamMaxRetries < 0 {
		return fmt.Errorf("UPSTREAM_MAX_RETRIES must not be negative, got %d", c.UpstreamMaxRetries)
	}
	if c.CBFailureRatio <= 0 || c.CBFailureRatio > 1 {
		return fmt.Errorf("CB_FAILURE_RATIO must be in (0, 1], got %v", c.CBFailureRatio)
	}
	if !domain.IsValidLimit(c.DefaultPageLimit) {
		return fmt.Errorf("DEFAULT_PAGE_LIMIT must be one of %v, got %d", domain.PageSizeOptions(), c.DefaultPageLimit)
	}
	if c.SessionTTLMinutes < 1 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMinutes)
	}
	if c.Redis.Enabled && c.FacetCacheTTLSeconds < 1 {
		return fmt.Errorf("FACET_CACHE_TTL_SECONDS must be positive when redis is enabled, got %d", c.FacetCacheTTLSeconds)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}
