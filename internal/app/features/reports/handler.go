// Package reports exposes the aggregation reports over HTTP. The
// heavy lifting lives in store/queries/reportqueries; these handlers
// just run a query and serialize its rows.
package reports

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/store/queries/reportqueries"
	"github.com/mindhaven/mindhaven/internal/app/system/timeouts"
	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
)

type Handler struct {
	db  *mongo.Database
	log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{db: db, log: logger}
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, op string, run func(context.Context) (any, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := run(ctx)
	if err != nil {
		webjson.StoreError(w, h.log, op, err)
		return
	}
	webjson.Write(w, http.StatusOK, rows)
}

// CatalogBreakdown handles GET /reports/meditations.
func (h *Handler) CatalogBreakdown(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "catalog breakdown report", func(ctx context.Context) (any, error) {
		return reportqueries.CatalogBreakdown(ctx, h.db)
	})
}

// MoodDistribution handles GET /reports/moods.
func (h *Handler) MoodDistribution(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "mood distribution report", func(ctx context.Context) (any, error) {
		return reportqueries.MoodDistribution(ctx, h.db)
	})
}

// RecentSessions handles GET /reports/sessions.
func (h *Handler) RecentSessions(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "recent sessions report", func(ctx context.Context) (any, error) {
		return reportqueries.RecentSessions(ctx, h.db)
	})
}

// MostActiveUsers handles GET /reports/active-users.
func (h *Handler) MostActiveUsers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "active users report", func(ctx context.Context) (any, error) {
		return reportqueries.MostActiveUsers(ctx, h.db)
	})
}
