// Package meditations serves the public guided meditation catalog.
package meditations

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	meditationstore "github.com/mindhaven/mindhaven/internal/app/store/meditations"
	"github.com/mindhaven/mindhaven/internal/app/system/timeouts"
	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
)

const defaultListLimit = 100

type Handler struct {
	meditations *meditationstore.Store
	log         *zap.Logger
}

func NewHandler(gw *gateway.Gateway, logger *zap.Logger) *Handler {
	return &Handler{
		meditations: meditationstore.New(gw),
		log:         logger,
	}
}

// List handles GET /meditations. Optional query parameters narrow the
// catalog: ?category=, ?type=, ?min_duration=&max_duration=. Filtered
// listings are capped; the unfiltered catalog pages with ?after= and
// ?before= cursors instead.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	category := q.Get("category")
	medType := q.Get("type")
	minDur, _ := strconv.Atoi(q.Get("min_duration"))
	maxDur, _ := strconv.Atoi(q.Get("max_duration"))

	var (
		list any
		err  error
	)
	switch {
	case category != "":
		list, err = h.meditations.FindByCategory(ctx, category, defaultListLimit)
	case medType != "":
		list, err = h.meditations.FindByType(ctx, medType, defaultListLimit)
	case minDur > 0 || maxDur > 0:
		list, err = h.meditations.FindByDurationRange(ctx, minDur, maxDur, defaultListLimit)
	default:
		list, err = h.meditations.ListPage(ctx, q.Get("before"), q.Get("after"))
	}
	if err != nil {
		webjson.StoreError(w, h.log, "list meditations", err)
		return
	}

	webjson.Write(w, http.StatusOK, list)
}

// Detail handles GET /meditations/{id}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	med, err := h.meditations.GetByHexID(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, meditationstore.ErrNotFound) {
		webjson.Error(w, http.StatusNotFound, "meditation not found")
		return
	}
	if err != nil {
		webjson.StoreError(w, h.log, "load meditation", err)
		return
	}

	webjson.Write(w, http.StatusOK, med)
}
