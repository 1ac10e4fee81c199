package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/pkg/database"
)

// FacetCache shares one facet catalog between sessions.
type FacetCache interface {
	// Get returns the cached catalog; ok is false on a miss.
	Get(ctx context.Context) (catalog *domain.FacetCatalog, ok bool, err error)
	Set(ctx context.Context, catalog *domain.FacetCatalog) error
}

const facetKeyPrefix = "catalog:facets:"

// RedisFacetCache stores the facet catalog as JSON under a single key.
type RedisFacetCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisFacetCache caches catalogs of the API identified by namespace
// (usually its base URL) for ttl.
func NewRedisFacetCache(client *redis.Client, namespace string, ttl time.Duration) *RedisFacetCache {
	return &RedisFacetCache{
		client: client,
		key:    facetKeyPrefix + namespace,
		ttl:    ttl,
	}
}

// Get reads the cached catalog.
func (c *RedisFacetCache) Get(ctx context.Context) (*domain.FacetCatalog, bool, error) {
	ctx, end := database.TraceCommand(ctx, "GET", c.key)
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		end(nil)
		facetCacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	end(err)
	if err != nil {
		facetCacheLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("redis get facets: %w", err)
	}

	var catalog domain.FacetCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		facetCacheLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("unmarshal facets: %w", err)
	}

	facetCacheLookups.WithLabelValues("hit").Inc()
	return &catalog, true, nil
}

// Set replaces the cached catalog.
func (c *RedisFacetCache) Set(ctx context.Context, catalog *domain.FacetCatalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("marshal facets: %w", err)
	}

	ctx, end := database.TraceCommand(ctx, "SET", c.key)
	err = c.client.Set(ctx, c.key, data, c.ttl).Err()
	end(err)
	if err != nil {
		return fmt.Errorf("redis set facets: %w", err)
	}
	return nil
}
