package domain

import "fmt"

// Dimension names a filterable facet.
type Dimension string

const (
	DimensionCategory Dimension = "category"
	DimensionBrand    Dimension = "brand"
	DimensionPrice    Dimension = "price"
	DimensionRating   Dimension = "rating"
)

// ParseDimension converts a raw string into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimensionCategory, DimensionBrand, DimensionPrice, DimensionRating:
		return d, nil
	default:
		return "", fmt.Errorf("unknown filter dimension %q", s)
	}
}

// IsSingleValue reports whether the dimension holds one string selection.
func (d Dimension) IsSingleValue() bool {
	return d == DimensionCategory || d == DimensionBrand
}

// IsRange reports whether the dimension is a numeric range.
func (d Dimension) IsRange() bool {
	return d == DimensionPrice || d == DimensionRating
}

// ActiveFilterSet holds the user's current selections. A nil field inherits
// the facet default; a non-nil field is an explicit override.
type ActiveFilterSet struct {
	Category  *string  `json:"category"`
	Brand     *string  `json:"brand"`
	MinPrice  *float64 `json:"minPrice"`
	MaxPrice  *float64 `json:"maxPrice"`
	MinRating *float64 `json:"minRating"`
	MaxRating *float64 `json:"maxRating"`
}

// Bounds returns the override pair for a range dimension.
func (s ActiveFilterSet) Bounds(dim Dimension) (low, high *float64) {
	switch dim {
	case DimensionPrice:
		return s.MinPrice, s.MaxPrice
	case DimensionRating:
		return s.MinRating, s.MaxRating
	default:
		return nil, nil
	}
}

// WithBounds returns a copy of s with the override pair of dim replaced.
func (s ActiveFilterSet) WithBounds(dim Dimension, low, high *float64) ActiveFilterSet {
	switch dim {
	case DimensionPrice:
		s.MinPrice, s.MaxPrice = low, high
	case DimensionRating:
		s.MinRating, s.MaxRating = low, high
	}
	return s
}

// Value returns the selection of a single-valued dimension.
func (s ActiveFilterSet) Value(dim Dimension) *string {
	switch dim {
	case DimensionCategory:
		return s.Category
	case DimensionBrand:
		return s.Brand
	default:
		return nil
	}
}

// WithValue returns a copy of s with the selection of dim replaced.
func (s ActiveFilterSet) WithValue(dim Dimension, v *string) ActiveFilterSet {
	switch dim {
	case DimensionCategory:
		s.Category = v
	case DimensionBrand:
		s.Brand = v
	}
	return s
}

// Equal compares two sets by value.
func (s ActiveFilterSet) Equal(o ActiveFilterSet) bool {
	return eqString(s.Category, o.Category) &&
		eqString(s.Brand, o.Brand) &&
		eqFloat(s.MinPrice, o.MinPrice) &&
		eqFloat(s.MaxPrice, o.MaxPrice) &&
		eqFloat(s.MinRating, o.MinRating) &&
		eqFloat(s.MaxRating, o.MaxRating)
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
