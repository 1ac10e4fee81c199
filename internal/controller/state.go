package controller

import (
	"slices"

	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/internal/filter"
	"github.com/MisakSofoyan1/product-app/internal/query"
	"github.com/MisakSofoyan1/product-app/pkg/pagination"
)

// Ranges holds the slider bounds currently shown for each range dimension.
type Ranges struct {
	Price  [2]float64 `json:"price"`
	Rating [2]float64 `json:"rating"`
}

// State is the browsing state of one page. Values handed out by the
// controller are copies; the facet slices are shared but never mutated.
type State struct {
	Filters   domain.ActiveFilterSet `json:"filters"`
	Cursor    query.Cursor           `json:"cursor"`
	Displayed Ranges                 `json:"displayed"`

	Catalog    domain.FacetCatalog   `json:"catalog"`
	Products   []domain.Product      `json:"products"`
	Pagination domain.PaginationInfo `json:"pagination"`

	// Fetched is set once any product page has been applied.
	Fetched              bool `json:"fetched"`
	Loading              bool `json:"loading"`
	FacetsLoading        bool `json:"facetsLoading"`
	LastFetchFailed      bool `json:"lastFetchFailed"`
	LastFacetFetchFailed bool `json:"lastFacetFetchFailed"`

	// Revision increases with every committed transition.
	Revision uint64 `json:"revision"`
}

func newState(cursor query.Cursor) State {
	s := State{
		Cursor:   cursor,
		Products: []domain.Product{},
	}
	s.recomputeDisplayed()
	return s
}

// Params returns the query the next product fetch is issued for.
func (s State) Params() domain.QueryParams {
	return s.Cursor.Params(s.Filters)
}

func (s State) displayed(dim domain.Dimension) [2]float64 {
	if dim == domain.DimensionRating {
		return s.Displayed.Rating
	}
	return s.Displayed.Price
}

func (s *State) setDisplayed(dim domain.Dimension, r [2]float64) {
	switch dim {
	case domain.DimensionPrice:
		s.Displayed.Price = r
	case domain.DimensionRating:
		s.Displayed.Rating = r
	}
}

func (s *State) recomputeDisplayed() {
	for _, dim := range []domain.Dimension{domain.DimensionPrice, domain.DimensionRating} {
		spec, _ := filter.SpecFor(dim)
		low, high := s.Filters.Bounds(dim)
		s.setDisplayed(dim, filter.DisplayedRange(s.Catalog.RangeFor(dim), low, high, spec.Fallback))
	}
}

// applyFilters installs next and reports whether a product fetch is due.
// Displayed ranges are always re-derived so that an uncommitted drag is
// discarded.
func (s *State) applyFilters(next domain.ActiveFilterSet) bool {
	changed := !next.Equal(s.Filters)
	if changed {
		s.Filters = next
		s.Cursor = s.Cursor.WithFiltersChanged()
	}
	s.recomputeDisplayed()
	return changed
}

func (s *State) setCatalog(catalog domain.FacetCatalog) {
	s.Catalog = catalog
	s.recomputeDisplayed()
}

// differsFrom compares the parts an action may change.
func (s State) differsFrom(o State) bool {
	return !s.Filters.Equal(o.Filters) || s.Cursor != o.Cursor || s.Displayed != o.Displayed
}

func (s State) snapshot() State {
	s.Products = slices.Clone(s.Products)
	if s.Products == nil {
		s.Products = []domain.Product{}
	}
	return s
}

// lastPage is the page bound of the current query, or 0 while it is
// unknown. The applied pagination may belong to another query before the
// first listing, while a product fetch is in flight and after a failed one.
func (s State) lastPage() int {
	if !s.Fetched || s.Loading || s.LastFetchFailed {
		return 0
	}
	return pagination.LastPage(s.Pagination.TotalPages)
}
