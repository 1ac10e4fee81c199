package filter

import (
	"strconv"

	"github.com/MisakSofoyan1/product-app/internal/domain"
)

// Tag is one entry of the "Active Filters" list. Removing it clears its
// dimension (for ranges, both bounds).
type Tag struct {
	Dimension domain.Dimension `json:"dimension"`
	Value     string           `json:"value,omitempty"`
	Label     string           `json:"label"`
}

// ActiveTags lists the active filters in display order: category, brand,
// price, rating.
func ActiveTags(set domain.ActiveFilterSet, catalog domain.FacetCatalog) []Tag {
	tags := make([]Tag, 0, 4)

	for _, dim := range []domain.Dimension{domain.DimensionCategory, domain.DimensionBrand} {
		if v := set.Value(dim); v != nil {
			tags = append(tags, Tag{Dimension: dim, Value: *v, Label: *v})
		}
	}

	for _, dim := range []domain.Dimension{domain.DimensionPrice, domain.DimensionRating} {
		low, high := set.Bounds(dim)
		if low == nil && high == nil {
			continue
		}
		spec := rangeSpecs[dim]
		r := DisplayedRange(catalog.RangeFor(dim), low, high, spec.Fallback)
		tags = append(tags, Tag{
			Dimension: dim,
			Label:     formatBound(r[0], spec.Decimals) + " - " + formatBound(r[1], spec.Decimals) + " " + spec.Unit,
		})
	}

	return tags
}

func formatBound(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
