package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/backend"
	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/httputil"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/validator"
)

// AdminHandler serves the admin dashboard endpoints: catalog management,
// order management, role assignment, and payment configuration. Routes
// using it are gated by RequireAdmin; the backend re-checks the forwarded
// principal on every call.
type AdminHandler struct {
	backend *backend.Client
	logger  *slog.Logger
}

// NewAdminHandler creates an admin HTTP handler.
func NewAdminHandler(client *backend.Client, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		backend: client,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddCategoryRequest is the body for POST /api/v1/admin/categories.
type AddCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// ProductImageRequest is the body for image add/remove endpoints.
type ProductImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// UpdateOrderStatusRequest is the body for PUT /api/v1/admin/orders/{orderID}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignRoleRequest is the body for PUT /api/v1/admin/users/{principal}/role.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user guest"`
}

// PaymentConfigRequest is the body for PUT /api/v1/admin/payment/configuration.
type PaymentConfigRequest struct {
	APIKey           string   `json:"api_key" validate:"required,min=8"`
	AllowedCountries []string `json:"allowed_countries" validate:"omitempty,dive,len=2"`
}

// --- Catalog management ---

// AddProduct handles POST /api/v1/admin/products
func (h *AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.backend.AddProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/admin/products/{productID}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.backend.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{productID}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// AddProductImage handles POST /api/v1/admin/products/{productID}/images
func (h *AdminHandler) AddProductImage(w http.ResponseWriter, r *http.Request) {
	var req ProductImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.backend.AddProductImage(r.Context(), chi.URLParam(r, "productID"), req.URL)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// RemoveProductImage handles POST /api/v1/admin/products/{productID}/images/remove
func (h *AdminHandler) RemoveProductImage(w http.ResponseWriter, r *http.Request) {
	var req ProductImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.backend.RemoveProductImage(r.Context(), chi.URLParam(r, "productID"), req.URL)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// AddCategory handles POST /api/v1/admin/categories
func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req AddCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	category, err := h.backend.AddCategory(r.Context(), req.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: category})
}

// --- Order management ---

// ListOrders handles GET /api/v1/admin/orders. A status query filters by
// order status.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var orders []domain.Order
	var err error

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.OrderStatus(raw)
		if !status.Valid() {
			httputil.WriteError(w, r, apperrors.InvalidInput("unknown order status: "+raw), h.logger)
			return
		}
		orders, err = h.backend.ListOrdersByStatus(r.Context(), status)
	} else {
		orders, err = h.backend.ListAllOrders(r.Context())
	}

	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/{orderID}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		httputil.WriteError(w, r, apperrors.InvalidInput("unknown order status: "+req.Status), h.logger)
		return
	}

	order, err := h.backend.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderID"), status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// --- User management ---

// GetUserProfile handles GET /api/v1/admin/users/{principal}/profile
func (h *AdminHandler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.backend.GetProfile(r.Context(), chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// AssignRole handles PUT /api/v1/admin/users/{principal}/role
func (h *AdminHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.backend.AssignRole(r.Context(), chi.URLParam(r, "principal"), domain.UserRole(req.Role)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "assigned"}})
}

// --- Payment configuration ---

// SetPaymentConfiguration handles PUT /api/v1/admin/payment/configuration.
// The key is forwarded to the backend and never stored or logged here.
func (h *AdminHandler) SetPaymentConfiguration(w http.ResponseWriter, r *http.Request) {
	var req PaymentConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.backend.SetPaymentConfiguration(r.Context(), req.APIKey, req.AllowedCountries); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "configured"}})
}

// IsPaymentConfigured handles GET /api/v1/admin/payment/configured
func (h *AdminHandler) IsPaymentConfigured(w http.ResponseWriter, r *http.Request) {
	configured, err := h.backend.IsPaymentConfigured(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"configured": configured}})
}
