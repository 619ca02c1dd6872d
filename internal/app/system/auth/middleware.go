// internal/app/system/auth/middleware.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
)

type contextKey struct{}

var userIDKey contextKey

// RequireAuth validates the Authorization bearer token and stores the
// caller's user id in the request context. Missing, malformed, and
// expired tokens each produce a structured 401 so clients can tell them
// apart.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			webjson.ErrorCode(w, http.StatusUnauthorized, "authentication token not provided", "authorization_required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			webjson.ErrorCode(w, http.StatusUnauthorized, "invalid authorization header format", "invalid_token")
			return
		}

		claims, err := m.VerifyAccess(parts[1])
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				webjson.ErrorCode(w, http.StatusUnauthorized, "token expired", "token_expired")
				return
			}
			webjson.ErrorCode(w, http.StatusUnauthorized, "invalid token", "invalid_token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUserID returns the authenticated user's id hex from the request
// context, or "" if the request did not pass through RequireAuth.
func CurrentUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// WithUserID returns a request whose context carries the given user id.
// Handler tests use this in place of running the full middleware.
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}
