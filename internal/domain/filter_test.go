package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	for _, raw := range []string{"category", "brand", "price", "rating"} {
		d, err := ParseDimension(raw)
		require.NoError(t, err)
		assert.Equal(t, Dimension(raw), d)
	}

	_, err := ParseDimension("color")
	assert.Error(t, err)
}

func TestDimension_Kinds(t *testing.T) {
	assert.True(t, DimensionCategory.IsSingleValue())
	assert.True(t, DimensionBrand.IsSingleValue())
	assert.False(t, DimensionPrice.IsSingleValue())

	assert.True(t, DimensionPrice.IsRange())
	assert.True(t, DimensionRating.IsRange())
	assert.False(t, DimensionBrand.IsRange())
}

func TestActiveFilterSet_WithBounds_DoesNotTouchOtherDimension(t *testing.T) {
	s := ActiveFilterSet{MinRating: FloatPtr(2)}
	got := s.WithBounds(DimensionPrice, FloatPtr(5), nil)

	low, high := got.Bounds(DimensionPrice)
	require.NotNil(t, low)
	assert.Equal(t, 5.0, *low)
	assert.Nil(t, high)
	assert.Equal(t, 2.0, *got.MinRating)
	assert.Nil(t, s.MinPrice, "original must be left untouched")
}

func TestActiveFilterSet_Equal(t *testing.T) {
	a := ActiveFilterSet{Category: StringPtr("Shoes"), MaxPrice: FloatPtr(100)}
	b := ActiveFilterSet{Category: StringPtr("Shoes"), MaxPrice: FloatPtr(100)}
	assert.True(t, a.Equal(b))

	b.MaxPrice = FloatPtr(99)
	assert.False(t, a.Equal(b))

	b.MaxPrice = nil
	assert.False(t, a.Equal(b))
	assert.True(t, ActiveFilterSet{}.Equal(ActiveFilterSet{}))
}

func TestIsValidLimit(t *testing.T) {
	for _, l := range []int{6, 10, 20, 50} {
		assert.True(t, IsValidLimit(l), "limit %d", l)
	}
	for _, l := range []int{0, 5, 11, 100} {
		assert.False(t, IsValidLimit(l), "limit %d", l)
	}
}

func TestFacetCatalog_RangeFor(t *testing.T) {
	c := FacetCatalog{PriceRange: &Range{Min: 1, Max: 2}}
	assert.Equal(t, &Range{Min: 1, Max: 2}, c.RangeFor(DimensionPrice))
	assert.Nil(t, c.RangeFor(DimensionRating))
	assert.Nil(t, c.RangeFor(DimensionBrand))
	assert.False(t, c.IsEmpty())
	assert.True(t, FacetCatalog{}.IsEmpty())
}
