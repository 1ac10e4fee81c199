package domain

import "github.com/MisakSofoyan1/product-app/pkg/pagination"

// Product is a single catalog entry as returned by the catalog API.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	ImageURL string  `json:"imageUrl"`
}

// Range is a closed numeric interval reported by the server for a facet.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FacetCatalog is the set of filter facets available for the current query
// context. Any field may be absent. A loaded catalog is never mutated; a
// refresh replaces it wholesale.
type FacetCatalog struct {
	Categories  []string `json:"categories,omitempty"`
	Brands      []string `json:"brands,omitempty"`
	PriceRange  *Range   `json:"priceRange,omitempty"`
	RatingRange *Range   `json:"ratingRange,omitempty"`
}

// RangeFor returns the server default for a range dimension, or nil when the
// catalog has none.
func (c FacetCatalog) RangeFor(dim Dimension) *Range {
	switch dim {
	case DimensionPrice:
		return c.PriceRange
	case DimensionRating:
		return c.RatingRange
	default:
		return nil
	}
}

// IsEmpty reports whether the server returned no facet data at all.
func (c FacetCatalog) IsEmpty() bool {
	return len(c.Categories) == 0 && len(c.Brands) == 0 && c.PriceRange == nil && c.RatingRange == nil
}

// PaginationInfo is the server-authoritative pagination block of a product
// listing.
type PaginationInfo = pagination.Info

// ProductPage is one successful product listing response.
type ProductPage struct {
	Data       []Product      `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}
