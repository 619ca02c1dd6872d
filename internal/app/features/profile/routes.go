// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/mindhaven/internal/app/system/auth"
)

// Routes returns the subrouter for /profile.
func Routes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(authMgr.RequireAuth)
	r.Get("/", h.Get)
	r.Put("/", h.Update)
	return r
}

// DeleteRoutes returns the subrouter for /users, which carries only
// the self-deletion endpoint.
func DeleteRoutes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(authMgr.RequireAuth)
	r.Delete("/{id}", h.Delete)
	return r
}
