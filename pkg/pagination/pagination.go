package pagination

import (
	"fmt"
)

// Info is the pagination block of a listing response.
type Info struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TotalPages returns the number of pages needed for total items.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return pages
}

// NewInfo builds the pagination block for a listing of total items.
func NewInfo(total, page, limit int) Info {
	return Info{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}

// Offset returns the index of the first item on page.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// Range is the 1-based inclusive span of items shown on a page.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ItemRange returns the items shown on page, for "Showing X-Y of Z".
func ItemRange(page, limit, total int) Range {
	if total == 0 {
		return Range{}
	}
	return Range{
		Start: (page-1)*limit + 1,
		End:   min(page*limit, total),
	}
}

// Summary renders the item range sentence.
func Summary(page, limit, total int) string {
	r := ItemRange(page, limit, total)
	return fmt.Sprintf("Showing %d-%d of %d products", r.Start, r.End, total)
}

// VisiblePageNumbers lists every page from 1 to totalPages.
func VisiblePageNumbers(totalPages int) []int {
	pages := make([]int, 0, max(totalPages, 0))
	for p := 1; p <= totalPages; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Nav holds the enabled state of the navigation buttons.
type Nav struct {
	First bool `json:"first"`
	Prev  bool `json:"prev"`
	Next  bool `json:"next"`
	Last  bool `json:"last"`
}

// Navigation derives which buttons are enabled for info.
func Navigation(info Info) Nav {
	back := info.Page > 1
	forward := info.TotalPages > 0 && info.Page < info.TotalPages
	return Nav{First: back, Prev: back, Next: forward, Last: forward}
}

// LastPage is the highest page a listing with totalPages can show. An empty
// listing still has page 1.
func LastPage(totalPages int) int {
	return max(totalPages, 1)
}

// ValidatePage rejects pages below 1 and pages past lastPage. A lastPage of
// 0 means the bound is not known yet and only the lower bound is checked.
func ValidatePage(page, lastPage int) error {
	if page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", page)
	}
	if lastPage > 0 && page > lastPage {
		return fmt.Errorf("page %d is past the last page %d", page, lastPage)
	}
	return nil
}

