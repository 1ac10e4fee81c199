// Package catalogapi talks to the remote catalog API that serves products
// and filter facets.
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/internal/query"
	apperrors "github.com/MisakSofoyan1/product-app/pkg/errors"
	"github.com/MisakSofoyan1/product-app/pkg/httpclient"
)

const (
	serviceName = "catalog-api"

	endpointProducts = "products"
	endpointFilters  = "filters"

	maxBodyBytes = 8 << 20
)

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// CircuitOpenFallback replaces the raw breaker error with a 503 while the
// catalog API is considered down.
func CircuitOpenFallback(_ context.Context, err error) (*http.Response, error) {
	appErr := apperrors.ServiceUnavailable("catalog api is temporarily unavailable")
	return nil, fmt.Errorf("%w: %w", appErr, err)
}

// Client fetches product pages and facet catalogs.
type Client struct {
	baseURL string
	http    HTTPDoer
	cache   FacetCache
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithFacetCache shares loaded facet catalogs through cache.
func WithFacetCache(cache FacetCache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, doer HTTPDoer, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		logger:  logger,
		tracer:  otel.Tracer("github.com/MisakSofoyan1/product-app/internal/catalogapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProducts requests one page of products matching q. Zero matches is a
// successful, empty page.
func (c *Client) FetchProducts(ctx context.Context, q domain.QueryParams) (*domain.ProductPage, error) {
	values, err := query.Encode(q)
	if err != nil {
		return nil, apperrors.Wrap(err, "encode product query")
	}

	var page domain.ProductPage
	if err := c.get(ctx, endpointProducts, values.Encode(), &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []domain.Product{}
	}
	return &page, nil
}

// FetchFilters returns the facet catalog, from the shared cache when one is
// configured and holds it.
func (c *Client) FetchFilters(ctx context.Context) (*domain.FacetCatalog, error) {
	if c.cache != nil {
		catalog, ok, err := c.cache.Get(ctx)
		switch {
		case err != nil:
			c.logger.WarnContext(ctx, "facet cache read failed", slog.String("error", err.Error()))
		case ok:
			return catalog, nil
		}
	}
	return c.RefreshFilters(ctx)
}

// RefreshFilters always asks the API and then updates the cache.
func (c *Client) RefreshFilters(ctx context.Context) (*domain.FacetCatalog, error) {
	var catalog domain.FacetCatalog
	if err := c.get(ctx, endpointFilters, "", &catalog); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, &catalog); err != nil {
			c.logger.WarnContext(ctx, "facet cache write failed", slog.String("error", err.Error()))
		}
	}
	return &catalog, nil
}

// get performs GET {baseURL}/{endpoint}?{rawQuery} and decodes the JSON body
// into dst.
func (c *Client) get(ctx context.Context, endpoint, rawQuery string, dst any) (err error) {
	ctx, span := c.tracer.Start(ctx, "catalogapi.get "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("catalog.endpoint", endpoint),
			attribute.String("url.query", rawQuery),
		),
	)
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		requestsTotal.WithLabelValues(endpoint, outcome).Inc()
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		span.End()
	}()

	url := c.baseURL + "/" + endpoint
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return apperrors.Wrap(err, "create "+endpoint+" request")
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return upstreamError(endpoint, err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Wrap(httpclient.ParseResponseError(resp, serviceName), "fetch "+endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return apperrors.Upstream("decode "+endpoint+" response", err)
	}
	return nil
}

// upstreamError keeps AppErrors produced by the fallback and classifies
// everything else as an upstream failure.
func upstreamError(endpoint string, err error) error {
	if apperrors.HTTPStatus(err) == http.StatusServiceUnavailable {
		return apperrors.Wrap(err, "fetch "+endpoint)
	}
	return apperrors.Upstream("fetch "+endpoint, err)
}
