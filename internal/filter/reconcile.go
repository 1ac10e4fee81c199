package filter

import (
	"github.com/MisakSofoyan1/product-app/internal/domain"
)

// RangeSpec describes how a range dimension is displayed and dragged.
type RangeSpec struct {
	// Fallback is used when neither an override nor a facet default exists.
	Fallback [2]float64
	// Step is the slider granularity and the minimum gap between handles.
	Step float64
	// Decimals is the precision used in tag labels.
	Decimals int
	// Unit is appended to tag labels.
	Unit string
}

var rangeSpecs = map[domain.Dimension]RangeSpec{
	domain.DimensionPrice:  {Fallback: [2]float64{0, 1000}, Step: 0.01, Decimals: 2, Unit: "$"},
	domain.DimensionRating: {Fallback: [2]float64{0, 5}, Step: 0.1, Decimals: 1, Unit: "★"},
}

// SpecFor returns the display rules of a range dimension.
func SpecFor(dim domain.Dimension) (RangeSpec, bool) {
	s, ok := rangeSpecs[dim]
	return s, ok
}

// DisplayedRange resolves the slider bounds: each side takes the override,
// then the facet default, then the fallback.
func DisplayedRange(facet *domain.Range, low, high *float64, fallback [2]float64) [2]float64 {
	out := fallback
	if facet != nil {
		out = [2]float64{facet.Min, facet.Max}
	}
	if low != nil {
		out[0] = *low
	}
	if high != nil {
		out[1] = *high
	}
	return out
}

// Commit turns a released drag into overrides. Each bound equal to the facet
// default becomes nil, any other value becomes an explicit override. When the
// facet default is unknown ok is false and the caller must keep its current
// overrides.
func Commit(dragged [2]float64, facet *domain.Range) (low, high *float64, ok bool) {
	if facet == nil {
		return nil, nil, false
	}
	if dragged[0] != facet.Min {
		low = domain.FloatPtr(dragged[0])
	}
	if dragged[1] != facet.Max {
		high = domain.FloatPtr(dragged[1])
	}
	return low, high, true
}

// ClampLow keeps the low handle at least one step below the high handle.
func ClampLow(value, high, step float64) float64 {
	return min(value, high-step)
}

// ClampHigh keeps the high handle at least one step above the low handle.
func ClampHigh(value, low, step float64) float64 {
	return max(value, low+step)
}

// Handle names one thumb of a range slider.
type Handle string

const (
	HandleLow  Handle = "low"
	HandleHigh Handle = "high"
)

// SliderBounds is the track of a range slider: the facet default, or the
// fallback while the facet is unknown.
func SliderBounds(facet *domain.Range, fallback [2]float64) [2]float64 {
	if facet == nil {
		return fallback
	}
	return [2]float64{facet.Min, facet.Max}
}

// Drag moves one handle of a displayed range. The value is first kept on the
// track, then clamped against the other handle.
func Drag(current, track [2]float64, handle Handle, value, step float64) ([2]float64, bool) {
	value = min(max(value, track[0]), track[1])
	switch handle {
	case HandleLow:
		current[0] = ClampLow(value, current[1], step)
	case HandleHigh:
		current[1] = ClampHigh(value, current[0], step)
	default:
		return current, false
	}
	return current, true
}
