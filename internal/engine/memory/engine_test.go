package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MisakSofoyan1/product-app/internal/domain"
)

func newTestProduct(id int, category, brand string, price, rating float64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "product",
		Category: category,
		Brand:    brand,
		Price:    price,
		Rating:   rating,
	}
}

func query(page, limit int) domain.QueryParams {
	return domain.QueryParams{Page: page, Limit: limit}
}

func TestEngine_Products_Paginates(t *testing.T) {
	ctx := context.Background()
	eng := New(SeedProducts()...)

	result, err := eng.Products(ctx, query(3, 10))
	require.NoError(t, err)
	assert.Len(t, result.Data, 5)
	assert.Equal(t, 21, result.Data[0].ID)
	assert.Equal(t, domain.PaginationInfo{Page: 3, Limit: 10, Total: 25, TotalPages: 3}, result.Pagination)
}

func TestEngine_Products_PastLastPageIsEmpty(t *testing.T) {
	eng := New(SeedProducts()...)

	result, err := eng.Products(context.Background(), query(9, 10))
	require.NoError(t, err)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Equal(t, 25, result.Pagination.Total)
}

func TestEngine_Products_ExactCategoryAndBrand(t *testing.T) {
	ctx := context.Background()
	eng := New()
	require.NoError(t, eng.BulkIndex(ctx, []domain.Product{
		newTestProduct(1, "Shoes", "Acme", 10, 4),
		newTestProduct(2, "Shoes", "Other", 10, 4),
		newTestProduct(3, "Shoes Deluxe", "Acme", 10, 4),
	}))

	q := query(1, 10)
	q.Category = domain.StringPtr("Shoes")
	q.Brand = domain.StringPtr("Acme")

	result, err := eng.Products(ctx, q)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 1, result.Data[0].ID)
}

func TestEngine_Products_InclusiveBounds(t *testing.T) {
	ctx := context.Background()
	eng := New(
		newTestProduct(1, "a", "b", 10, 1),
		newTestProduct(2, "a", "b", 20, 3),
		newTestProduct(3, "a", "b", 30, 5),
	)

	q := query(1, 10)
	q.MinPrice = domain.FloatPtr(10)
	q.MaxPrice = domain.FloatPtr(20)
	result, err := eng.Products(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pagination.Total)

	q = query(1, 10)
	q.MinRating = domain.FloatPtr(3)
	q.MaxRating = domain.FloatPtr(5)
	result, err = eng.Products(ctx, q)
	require.NoError(t, err)
	require.Len(t, result.Data, 2)
	assert.Equal(t, 2, result.Data[0].ID)
	assert.Equal(t, 3, result.Data[1].ID)
}

func TestEngine_Products_ZeroBoundIsAConstraint(t *testing.T) {
	eng := New(
		newTestProduct(1, "a", "b", 0, 0),
		newTestProduct(2, "a", "b", 5, 2),
	)

	q := query(1, 10)
	q.MaxRating = domain.FloatPtr(0)
	result, err := eng.Products(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 1, result.Data[0].ID)
}

func TestEngine_Products_NoMatchIsNotAnError(t *testing.T) {
	eng := New(SeedProducts()...)

	q := query(1, 6)
	q.Category = domain.StringPtr("Hats")
	result, err := eng.Products(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, 0, result.Pagination.Total)
	assert.Equal(t, 0, result.Pagination.TotalPages)
}

func TestEngine_Facets(t *testing.T) {
	eng := New(
		newTestProduct(1, "Shoes", "Zenith", 12.5, 4.2),
		newTestProduct(2, "Bags", "Acme", 99, 1.5),
		newTestProduct(3, "Shoes", "Acme", 3, 5),
	)

	facets, err := eng.Facets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bags", "Shoes"}, facets.Categories)
	assert.Equal(t, []string{"Acme", "Zenith"}, facets.Brands)
	assert.Equal(t, &domain.Range{Min: 3, Max: 99}, facets.PriceRange)
	assert.Equal(t, &domain.Range{Min: 1.5, Max: 5}, facets.RatingRange)
}

func TestEngine_Facets_EmptyCatalog(t *testing.T) {
	facets, err := New().Facets(context.Background())
	require.NoError(t, err)
	assert.True(t, facets.IsEmpty())
}

func TestEngine_BulkIndex_ReplacesByID(t *testing.T) {
	ctx := context.Background()
	eng := New(newTestProduct(1, "Shoes", "Acme", 10, 4))

	require.NoError(t, eng.BulkIndex(ctx, []domain.Product{newTestProduct(1, "Bags", "Acme", 10, 4)}))

	facets, err := eng.Facets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bags"}, facets.Categories)
}
