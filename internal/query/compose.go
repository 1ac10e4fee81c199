// Package query turns the active filter set and the pagination cursor into
// the parameters of a product fetch, and owns the page-reset policy.
package query

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/MisakSofoyan1/product-app/pkg/validator"

	"github.com/MisakSofoyan1/product-app/internal/domain"
)

var (
	encoder = schema.NewEncoder()
	decoder = schema.NewDecoder()
)

func init() {
	// Shortest representation that round-trips; schema's default pads to six
	// decimals.
	encoder.RegisterEncoder(float64(0), func(v reflect.Value) string {
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	})
	decoder.IgnoreUnknownKeys(true)
}

// Build projects the filter set and cursor into fetch parameters. Unset
// filters stay nil so the data source treats them as unconstrained.
func Build(set domain.ActiveFilterSet, page, limit int) domain.QueryParams {
	return domain.QueryParams{
		Page:      page,
		Limit:     limit,
		Category:  set.Category,
		Brand:     set.Brand,
		MinPrice:  set.MinPrice,
		MaxPrice:  set.MaxPrice,
		MinRating: set.MinRating,
		MaxRating: set.MaxRating,
	}
}

// Validate checks the page and limit constraints of q.
func Validate(q domain.QueryParams) error {
	return validator.Validate(q)
}

// Encode renders q as URL query values. Nil filters are omitted; explicit
// zero bounds are kept.
func Encode(q domain.QueryParams) (url.Values, error) {
	values := url.Values{}
	if err := encoder.Encode(q, values); err != nil {
		return nil, fmt.Errorf("encode query params: %w", err)
	}
	return values, nil
}

// Decode parses URL query values into QueryParams. Missing page and limit
// default to the first page and the default page size.
func Decode(values url.Values) (domain.QueryParams, error) {
	q := domain.QueryParams{
		Page:  1,
		Limit: domain.DefaultPageLimit,
	}
	if err := decoder.Decode(&q, values); err != nil {
		return q, fmt.Errorf("decode query params: %w", err)
	}
	return q, nil
}
