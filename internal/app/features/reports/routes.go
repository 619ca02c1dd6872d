// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/mindhaven/internal/app/system/auth"
)

// Routes returns the subrouter for /reports. Reports read other
// users' activity, so every endpoint requires a bearer token.
func Routes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(authMgr.RequireAuth)
	r.Get("/meditations", h.CatalogBreakdown)
	r.Get("/moods", h.MoodDistribution)
	r.Get("/sessions", h.RecentSessions)
	r.Get("/active-users", h.MostActiveUsers)
	return r
}
