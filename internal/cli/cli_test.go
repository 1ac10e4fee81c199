package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MisakSofoyan1/product-app/internal/controller"
	"github.com/MisakSofoyan1/product-app/internal/engine/memory"
	handler "github.com/MisakSofoyan1/product-app/internal/handler/http"
	"github.com/MisakSofoyan1/product-app/pkg/logger"
)

func catalogServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(handler.NewCatalogRouter(memory.New(memory.SeedProducts()...), logger.Discard()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(append(args, "--log-level", "error"))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestBrowse_FirstPage(t *testing.T) {
	api := catalogServer(t)

	out, err := execute(t, "browse", "--api", api)
	require.NoError(t, err)

	assert.Contains(t, out, "Showing 1-10 of 25 products")
	assert.Contains(t, out, "Pages: [1] 2 3")
	assert.NotContains(t, out, "Active filters")
}

func TestBrowse_JSONWithFilters(t *testing.T) {
	api := catalogServer(t)

	out, err := execute(t, "browse", "--api", api, "--category", "Shoes", "--max-price", "200", "--json")
	require.NoError(t, err)

	var view controller.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.True(t, view.HasActive)
	require.NotNil(t, view.Filters.Category)
	assert.Equal(t, "Shoes", *view.Filters.Category)
	require.NotNil(t, view.Filters.MaxPrice)
	assert.Equal(t, 200.0, *view.Filters.MaxPrice)
	assert.Len(t, view.ActiveTags, 2)
	for _, p := range view.Products {
		assert.Equal(t, "Shoes", p.Category)
		assert.LessOrEqual(t, p.Price, 200.0)
	}
}

func TestBrowse_LimitThenPage(t *testing.T) {
	api := catalogServer(t)

	out, err := execute(t, "browse", "--api", api, "--limit", "6", "--page", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 25-25 of 25 products")
}

func TestBrowse_NoMatches(t *testing.T) {
	api := catalogServer(t)

	out, err := execute(t, "browse", "--api", api, "--brand", "Nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "Active filters: Nobody")
	assert.Contains(t, out, "No products match the selected filters")
}

func TestBrowse_RejectsInvalidFlags(t *testing.T) {
	api := catalogServer(t)

	tests := []struct {
		name string
		args []string
	}{
		{"limit not offered", []string{"--limit", "7"}},
		{"page below one", []string{"--page", "0"}},
		{"page past last", []string{"--page", "4"}},
		{"crossed price bounds", []string{"--min-price", "50", "--max-price", "10"}},
		{"crossed rating bounds", []string{"--min-rating", "4", "--max-rating", "2"}},
		{"equal price bounds", []string{"--min-price", "50", "--max-price", "50"}},
		{"rating bounds under one step", []string{"--min-rating", "3", "--max-rating", "3.05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"browse", "--api", api}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestBrowse_BoundsOneStepApart(t *testing.T) {
	api := catalogServer(t)

	out, err := execute(t, "browse", "--api", api, "--min-rating", "3.2", "--max-rating", "3.3", "--json")
	require.NoError(t, err)

	var view controller.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.NotNil(t, view.Filters.MinRating)
	require.NotNil(t, view.Filters.MaxRating)
	assert.InDelta(t, 3.2, *view.Filters.MinRating, 1e-9)
	assert.InDelta(t, 3.3, *view.Filters.MaxRating, 1e-9)
}

func TestBrowseOptions_Validate(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }
	base := browseOptions{limit: 10, page: 1}

	ok := base
	ok.minPrice, ok.maxPrice = ptr(49.99), ptr(50)
	assert.NoError(t, ok.validate())

	same := base
	same.minPrice, same.maxPrice = ptr(50), ptr(50)
	assert.ErrorContains(t, same.validate(), "--max-price must be at least 0.01 above --min-price")

	onlyLow := base
	onlyLow.minRating = ptr(5)
	assert.NoError(t, onlyLow.validate())
}

func TestBrowse_UnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	api := srv.URL
	srv.Close()

	_, err := execute(t, "browse", "--api", api, "--timeout", "500ms")
	assert.Error(t, err)
}

func TestServeCatalog_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveCatalog(ctx, ln, handler.NewCatalogRouter(memory.New(memory.SeedProducts()...), logger.Discard()))
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/filters")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestReadProducts(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":7,"name":"Cap","category":"Hats","brand":"Acme","price":12.5,"rating":4}]`), 0o600))
	items, err := readProducts(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cap", items[0].Name)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":1}`), 0o600))
	_, err = readProducts(bad)
	assert.Error(t, err)

	_, err = readProducts(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
