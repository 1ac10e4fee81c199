// Package filter holds the pure rules for the active filter set: exclusive
// single-value selection, clearing, range reconciliation against facet
// defaults and the active-filter tag list.
package filter

import (
	"fmt"

	apperrors "github.com/MisakSofoyan1/product-app/pkg/errors"

	"github.com/MisakSofoyan1/product-app/internal/domain"
)

// Toggle selects value on a single-valued dimension. An empty value or the
// currently selected value clears the dimension; any other value replaces the
// previous selection. The input set is not modified.
func Toggle(set domain.ActiveFilterSet, dim domain.Dimension, value string) (domain.ActiveFilterSet, error) {
	if !dim.IsSingleValue() {
		return set, apperrors.InvalidInput(fmt.Sprintf("dimension %q cannot be toggled", dim))
	}

	if value == "" {
		return set.WithValue(dim, nil), nil
	}
	if cur := set.Value(dim); cur != nil && *cur == value {
		return set.WithValue(dim, nil), nil
	}
	return set.WithValue(dim, domain.StringPtr(value)), nil
}

// ClearAll returns the set with every field unset.
func ClearAll() domain.ActiveFilterSet {
	return domain.ActiveFilterSet{}
}

// ClearRange drops both overrides of a range dimension.
func ClearRange(set domain.ActiveFilterSet, dim domain.Dimension) (domain.ActiveFilterSet, error) {
	if !dim.IsRange() {
		return set, apperrors.InvalidInput(fmt.Sprintf("dimension %q is not a range", dim))
	}
	return set.WithBounds(dim, nil, nil), nil
}

// HasActive reports whether any filter is set.
func HasActive(set domain.ActiveFilterSet) bool {
	return set.Category != nil ||
		set.Brand != nil ||
		set.MinPrice != nil ||
		set.MaxPrice != nil ||
		set.MinRating != nil ||
		set.MaxRating != nil
}
