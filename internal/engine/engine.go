package engine

import (
	"context"

	"github.com/MisakSofoyan1/product-app/internal/domain"
)

// Catalog is the data source behind the reference catalog API.
type Catalog interface {
	// Products returns one page of the products matching q.
	Products(ctx context.Context, q domain.QueryParams) (*domain.ProductPage, error)

	// Facets returns the filter facets computed over the whole catalog.
	Facets(ctx context.Context) (*domain.FacetCatalog, error)

	// BulkIndex adds or replaces products by id.
	BulkIndex(ctx context.Context, products []domain.Product) error
}
