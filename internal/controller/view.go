package controller

import (
	"github.com/MisakSofoyan1/product-app/internal/domain"
	"github.com/MisakSofoyan1/product-app/internal/filter"
	"github.com/MisakSofoyan1/product-app/pkg/pagination"
)

// View is the page model derived from a State: everything a renderer needs
// without re-implementing the filter or pagination rules.
type View struct {
	Products []domain.Product       `json:"products"`
	Catalog  domain.FacetCatalog    `json:"catalog"`
	Filters  domain.ActiveFilterSet `json:"filters"`

	Displayed  Ranges       `json:"displayed"`
	HasActive  bool         `json:"hasActiveFilters"`
	ActiveTags []filter.Tag `json:"activeTags"`

	// Empty is set when the last applied listing had no products; the page
	// then offers to clear all filters.
	Empty      bool           `json:"empty"`
	Pagination PaginationView `json:"pagination"`

	PageSizes     []int  `json:"pageSizes"`
	Loading       bool   `json:"loading"`
	FacetsLoading bool   `json:"facetsLoading"`
	FetchFailed   bool   `json:"fetchFailed"`
	Revision      uint64 `json:"revision"`
}

// PaginationView is the pagination block of a View.
type PaginationView struct {
	pagination.Info
	Visible bool             `json:"visible"`
	Range   pagination.Range `json:"range"`
	Summary string           `json:"summary"`
	Pages   []int            `json:"pages"`
	Nav     pagination.Nav   `json:"nav"`
}

// BuildView derives the page model from s.
func BuildView(s State) View {
	info := s.Pagination
	if !s.Fetched {
		info = pagination.Info{Page: s.Cursor.Page, Limit: s.Cursor.Limit}
	}

	return View{
		Products:   s.Products,
		Catalog:    s.Catalog,
		Filters:    s.Filters,
		Displayed:  s.Displayed,
		HasActive:  filter.HasActive(s.Filters),
		ActiveTags: filter.ActiveTags(s.Filters, s.Catalog),
		Empty:      s.Fetched && len(s.Products) == 0,
		Pagination: PaginationView{
			Info:    info,
			Visible: info.Total > 0,
			Range:   pagination.ItemRange(info.Page, info.Limit, info.Total),
			Summary: pagination.Summary(info.Page, info.Limit, info.Total),
			Pages:   pagination.VisiblePageNumbers(info.TotalPages),
			Nav:     pagination.Navigation(info),
		},
		PageSizes:     domain.PageSizeOptions(),
		Loading:       s.Loading,
		FacetsLoading: s.FacetsLoading,
		FetchFailed:   s.LastFetchFailed,
		Revision:      s.Revision,
	}
}
