// Package stats serves the public aggregate counters.
package stats

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	"github.com/mindhaven/mindhaven/internal/app/system/timeouts"
	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
)

type Handler struct {
	gw  *gateway.Gateway
	log *zap.Logger
}

func NewHandler(gw *gateway.Gateway, logger *zap.Logger) *Handler {
	return &Handler{gw: gw, log: logger}
}

type statsResponse struct {
	Users       int64 `json:"users"`
	Meditations int64 `json:"meditations"`
}

// Serve handles GET /stats with collection-level counts. No per-user
// data appears here, so the endpoint stays public.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users, err := h.gw.CountDocuments(ctx, gateway.UsersCollection)
	if err != nil {
		webjson.StoreError(w, h.log, "count users", err)
		return
	}
	meditations, err := h.gw.CountDocuments(ctx, gateway.MeditationsCollection)
	if err != nil {
		webjson.StoreError(w, h.log, "count meditations", err)
		return
	}

	webjson.Write(w, http.StatusOK, statsResponse{
		Users:       users,
		Meditations: meditations,
	})
}
