package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/backend"
	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/httputil"
)

// CatalogHandler serves the public, read-only catalog endpoints. Listings
// come straight from the commerce backend.
type CatalogHandler struct {
	backend *backend.Client
	logger  *slog.Logger
}

// NewCatalogHandler creates a catalog HTTP handler.
func NewCatalogHandler(client *backend.Client, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		backend: client,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products. A category_id query filters by
// category; sort=price with order=asc|desc sorts by price. The filters are
// mutually exclusive.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var products []domain.Product
	var err error

	switch {
	case q.Get("category_id") != "":
		products, err = h.backend.ListProductsByCategory(r.Context(), q.Get("category_id"))
	case q.Get("sort") == "price":
		order := domain.SortOrder(q.Get("order"))
		if order == "" {
			order = domain.SortAscending
		}
		if !order.Valid() {
			httputil.WriteError(w, r, apperrors.InvalidInput("order must be asc or desc"), h.logger)
			return
		}
		products, err = h.backend.ListProductsSortedByPrice(r.Context(), order)
	default:
		products, err = h.backend.ListProducts(r.Context())
	}

	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetProduct handles GET /api/v1/products/{productID}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.backend.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListFeatured handles GET /api/v1/products/featured
func (h *CatalogHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.backend.ListFeaturedProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// SearchProducts handles GET /api/v1/products/search?q=
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("q query parameter is required"), h.logger)
		return
	}

	products, err := h.backend.SearchProducts(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.backend.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}
