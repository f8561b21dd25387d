package httpd

import (
	"context"
	"net/http"
	"strings"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// Authenticated resolves the Bearer token into a CurrentUser and
// stores it on the request context. Requests without a valid token are
// rejected before reaching the handler.
func (h *Handler) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header must be a Bearer token")
			return
		}

		user, err := h.authService.Authenticate(r.Context(), token)
		if err != nil {
			h.handleServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly must run inside Authenticated.
func (h *Handler) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) (models.CurrentUser, bool) {
	user, ok := r.Context().Value(currentUserKey).(models.CurrentUser)
	return user, ok
}
