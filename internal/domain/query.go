package domain

import "slices"

// DefaultPageLimit is the page size used before the visitor picks one.
const DefaultPageLimit = 10

// pageSizeOptions are the page sizes offered by the "Show:" selector.
var pageSizeOptions = []int{6, 10, 20, 50}

// PageSizeOptions returns the allowed page sizes in display order.
func PageSizeOptions() []int {
	return slices.Clone(pageSizeOptions)
}

// IsValidLimit checks whether limit is one of the offered page sizes.
func IsValidLimit(limit int) bool {
	return slices.Contains(pageSizeOptions, limit)
}

// QueryParams are the request parameters of one product fetch. Nil filter
// fields mean "unconstrained" and are omitted from the wire.
type QueryParams struct {
	Page      int      `json:"page" schema:"page" validate:"gte=1"`
	Limit     int      `json:"limit" schema:"limit" validate:"oneof=6 10 20 50"`
	Category  *string  `json:"category,omitempty" schema:"category,omitempty"`
	Brand     *string  `json:"brand,omitempty" schema:"brand,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty" schema:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty" schema:"maxPrice,omitempty"`
	MinRating *float64 `json:"minRating,omitempty" schema:"minRating,omitempty"`
	MaxRating *float64 `json:"maxRating,omitempty" schema:"maxRating,omitempty"`
}

// Filters returns the filter part of the query as an ActiveFilterSet.
func (q QueryParams) Filters() ActiveFilterSet {
	return ActiveFilterSet{
		Category:  q.Category,
		Brand:     q.Brand,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinRating: q.MinRating,
		MaxRating: q.MaxRating,
	}
}
