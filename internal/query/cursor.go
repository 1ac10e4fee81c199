package query

import "github.com/MisakSofoyan1/product-app/internal/domain"

// Cursor is the pagination position the next fetch is issued for.
type Cursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewCursor starts on the first page with the given page size.
func NewCursor(limit int) Cursor {
	if !domain.IsValidLimit(limit) {
		limit = domain.DefaultPageLimit
	}
	return Cursor{Page: 1, Limit: limit}
}

// WithFiltersChanged resets to the first page: a different result set makes
// the previous page number meaningless.
func (c Cursor) WithFiltersChanged() Cursor {
	c.Page = 1
	return c
}

// WithLimit changes the page size and resets to the first page.
func (c Cursor) WithLimit(limit int) Cursor {
	c.Limit = limit
	c.Page = 1
	return c
}

// WithPage moves to page, leaving the page size untouched.
func (c Cursor) WithPage(page int) Cursor {
	c.Page = page
	return c
}

// Params composes the fetch parameters for this cursor and filter set.
func (c Cursor) Params(set domain.ActiveFilterSet) domain.QueryParams {
	return Build(set, c.Page, c.Limit)
}
