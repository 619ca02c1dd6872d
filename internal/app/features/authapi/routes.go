// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/mindhaven/internal/app/system/ratelimit"
)

// Register attaches the authentication endpoints to the given router.
// These live at the root of the API rather than under a mount, so the
// caller passes its router in. Registration and login each carry their
// own per-IP limiter.
func Register(r chi.Router, h *Handler, registerLimiter, loginLimiter *ratelimit.Limiter) {
	r.With(registerLimiter.Middleware).Post("/register", h.Register)
	r.With(loginLimiter.Middleware).Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}
