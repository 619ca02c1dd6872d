// internal/app/features/meditations/routes.go
package meditations

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for /meditations. The caller may mount
// further subtrees (such as the session log) onto the returned router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Detail)
	return r
}
