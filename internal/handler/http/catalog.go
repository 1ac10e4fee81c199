package http

import (
	"log/slog"
	"net/http"

	"github.com/MisakSofoyan1/product-app/internal/engine"
	"github.com/MisakSofoyan1/product-app/internal/query"
	apperrors "github.com/MisakSofoyan1/product-app/pkg/errors"
	"github.com/MisakSofoyan1/product-app/pkg/httputil"
)

// CatalogHandler serves the catalog API contract: product listings and
// filter facets, written as bare JSON bodies without the data envelope.
type CatalogHandler struct {
	catalog engine.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a catalog API handler backed by catalog.
func NewCatalogHandler(catalog engine.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := query.Decode(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()), h.logger)
		return
	}
	if err := query.Validate(q); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	page, err := h.catalog.Products(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(page.Data, page.Pagination.Total, page.Pagination.Page, page.Pagination.Limit),
	)
}

// Filters handles GET /filters
func (h *CatalogHandler) Filters(w http.ResponseWriter, r *http.Request) {
	facets, err := h.catalog.Facets(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, facets)
}
