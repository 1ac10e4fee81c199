package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/pkg/pagination"
)

// Engine is an in-memory product catalog. Listings are ordered by product id.
// Thread-safe via sync.RWMutex.
type Engine struct {
	mu       sync.RWMutex
	products map[int]domain.Product
}

// New creates an engine holding products.
func New(products ...domain.Product) *Engine {
	e := &Engine{
		products: make(map[int]domain.Product, len(products)),
	}
	for _, p := range products {
		e.products[p.ID] = p
	}
	return e
}

// BulkIndex adds or replaces products by id.
func (e *Engine) BulkIndex(_ context.Context, products []domain.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range products {
		e.products[p.ID] = p
	}
	return nil
}

// Products returns the requested page of products matching q. A page past
// the end yields no products but the full pagination block.
func (e *Engine) Products(_ context.Context, q domain.QueryParams) (*domain.ProductPage, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	matched := make([]domain.Product, 0)
	for _, p := range e.products {
		if matches(p, q) {
			matched = append(matched, p)
		}
	}
	slices.SortFunc(matched, func(a, b domain.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(matched)
	offset := min(pagination.Offset(q.Page, q.Limit), total)
	end := min(offset+q.Limit, total)

	return &domain.ProductPage{
		Data:       matched[offset:end],
		Pagination: pagination.NewInfo(total, q.Page, q.Limit),
	}, nil
}

// Facets lists the distinct categories and brands in sorted order and the
// price and rating spans. An empty catalog has no facets at all.
func (e *Engine) Facets(_ context.Context) (*domain.FacetCatalog, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.products) == 0 {
		return &domain.FacetCatalog{}, nil
	}

	var (
		categories, brands []string
		price, rating      *domain.Range
	)
	for _, p := range e.products {
		categories = append(categories, p.Category)
		brands = append(brands, p.Brand)
		price = widen(price, p.Price)
		rating = widen(rating, p.Rating)
	}

	return &domain.FacetCatalog{
		Categories:  distinct(categories),
		Brands:      distinct(brands),
		PriceRange:  price,
		RatingRange: rating,
	}, nil
}

func matches(p domain.Product, q domain.QueryParams) bool {
	if q.Category != nil && p.Category != *q.Category {
		return false
	}
	if q.Brand != nil && p.Brand != *q.Brand {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.MinRating != nil && p.Rating < *q.MinRating {
		return false
	}
	if q.MaxRating != nil && p.Rating > *q.MaxRating {
		return false
	}
	return true
}

func widen(r *domain.Range, v float64) *domain.Range {
	if r == nil {
		return &domain.Range{Min: v, Max: v}
	}
	r.Min = min(r.Min, v)
	r.Max = max(r.Max, v)
	return r
}

func distinct(values []string) []string {
	out := slices.DeleteFunc(slices.Clone(values), func(s string) bool { return s == "" })
	slices.Sort(out)
	return slices.Compact(out)
}
