// internal/app/features/history/routes.go
package history

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/mindhaven/internal/app/system/auth"
)

// Routes returns the subrouter mounted at /meditations/history.
func Routes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(authMgr.RequireAuth)
	r.Post("/", h.Record)
	return r
}
