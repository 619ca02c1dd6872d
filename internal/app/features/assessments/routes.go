// internal/app/features/assessments/routes.go
package assessments

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/mindhaven/internal/app/system/auth"
)

// Routes returns the subrouter for /assessments.
func Routes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(authMgr.RequireAuth)
	r.Post("/", h.Submit)
	r.Get("/history", h.History)
	return r
}
