package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/httputil"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/middleware"
)

// SessionHeader carries the shopper's browsing session ID. The frontend
// generates it once and sends it on every cart and checkout request.
const SessionHeader = "X-Session-ID"

type contextKey string

const sessionIDKey contextKey = "session_id"

// RequireSession rejects requests without an X-Session-ID header and stores
// the session ID in the request context.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(SessionHeader))
		if sid == "" {
			httputil.WriteError(w, r, apperrors.InvalidInput(SessionHeader+" header is required"), nil)
			return
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionIDFromContext returns the session ID stored by RequireSession.
func sessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}

// RoleChecker resolves the calling user's role. Satisfied by
// *backend.Client.
type RoleChecker interface {
	GetCallerRole(ctx context.Context) (domain.UserRole, error)
}

// RequireAdmin rejects callers whose role, as reported by the commerce
// backend, is not admin. Must run after authentication middleware.
func RequireAdmin(roles RoleChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if middleware.Principal(r.Context()) == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), logger)
				return
			}

			role, err := roles.GetCallerRole(r.Context())
			if err != nil {
				logger.ErrorContext(r.Context(), "failed to resolve caller role",
					slog.String("error", err.Error()),
				)
				httputil.WriteError(w, r, err, logger)
				return
			}
			if role != domain.RoleAdmin {
				httputil.WriteError(w, r, apperrors.Forbidden("admin role required"), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON enforces that requests with a body declare JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
