package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/service"
	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/httputil"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/validator"
)

// CheckoutHandler serves the checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// ConfirmRequest is the body for POST /api/v1/checkout/confirm.
type ConfirmRequest struct {
	CheckoutSessionID string `json:"checkout_session_id" validate:"required"`
}

// Submit handles POST /api/v1/checkout. On success the shopper is sent to
// the returned redirect URL to pay.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Submit(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: session})
}

// Confirm handles POST /api/v1/checkout/confirm, called when the shopper
// returns from the payment gateway.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	status, err := h.service.ConfirmCheckout(r.Context(), sessionIDFromContext(r.Context()), req.CheckoutSessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": string(status)}})
}

// State handles GET /api/v1/checkout/state
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	state := h.service.State(sessionIDFromContext(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"state": string(state)}})
}
