// internal/app/features/mood/routes.go
package mood

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/mindhaven/internal/app/system/auth"
)

// Routes returns the subrouter for /mood.
func Routes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(authMgr.RequireAuth)
	r.Post("/", h.Record)
	r.Get("/weekly-report", h.WeeklyReport)
	return r
}
