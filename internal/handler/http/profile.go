package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/backend"
	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/httputil"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/validator"
)

// ProfileHandler serves the calling user's profile and role endpoints.
type ProfileHandler struct {
	backend *backend.Client
	logger  *slog.Logger
}

// NewProfileHandler creates a profile HTTP handler.
func NewProfileHandler(client *backend.Client, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		backend: client,
		logger:  logger,
	}
}

// GetProfile handles GET /api/v1/profile. A user who has never saved a
// profile gets a null payload, not a 404.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.backend.GetCallerProfile(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// SaveProfile handles PUT /api/v1/profile
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var input domain.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	profile, err := h.backend.SaveCallerProfile(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// GetRole handles GET /api/v1/profile/role
func (h *ProfileHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.backend.GetCallerRole(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"role": string(role)}})
}
