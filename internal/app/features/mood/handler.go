// Package mood records daily mood check-ins and serves the weekly
// summary.
package mood

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	userstore "github.com/mindhaven/mindhaven/internal/app/store/users"
	"github.com/mindhaven/mindhaven/internal/app/system/auth"
	"github.com/mindhaven/mindhaven/internal/app/system/sanitize"
	"github.com/mindhaven/mindhaven/internal/app/system/timeouts"
	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

type Handler struct {
	users *userstore.Store
	log   *zap.Logger
}

func NewHandler(gw *gateway.Gateway, logger *zap.Logger) *Handler {
	return &Handler{
		users: userstore.New(gw),
		log:   logger,
	}
}

type recordRequest struct {
	Level   int    `json:"level"`
	Feeling string `json:"feeling"`
	Notes   string `json:"notes,omitempty"`
}

// Record handles POST /mood. Level must be 1 through 5.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	userID := auth.CurrentUserID(r)

	var req recordRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.users.GetByHexID(ctx, userID)
	if errors.Is(err, userstore.ErrNotFound) {
		webjson.Error(w, http.StatusNotFound, "account no longer exists")
		return
	}
	if err != nil {
		webjson.StoreError(w, h.log, "load user", err)
		return
	}

	entry := models.MoodEntry{
		Level:      req.Level,
		Feeling:    sanitize.Text(req.Feeling),
		Notes:      sanitize.Text(req.Notes),
		RecordedAt: time.Now().UTC(),
	}
	err = h.users.AppendMoodEntry(ctx, user.ID, entry)
	switch {
	case userstore.IsValidation(err):
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		webjson.StoreError(w, h.log, "append mood entry", err)
		return
	}

	webjson.Write(w, http.StatusCreated, entry)
}

// weeklyReportEntries caps the entries echoed back in the report.
const weeklyReportEntries = 7

// weeklyReport summarizes the caller's last seven days of check-ins.
// Entries are newest first and capped; the statistics cover the whole
// window.
type weeklyReport struct {
	From          time.Time          `json:"from"`
	To            time.Time          `json:"to"`
	TotalEntries  int                `json:"total_entries"`
	AverageLevel  float64            `json:"average_level"`
	FeelingCounts map[string]int     `json:"feeling_counts"`
	Entries       []models.MoodEntry `json:"entries"`
}

// WeeklyReport handles GET /mood/weekly-report.
func (h *Handler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID := auth.CurrentUserID(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.users.GetByHexID(ctx, userID)
	if errors.Is(err, userstore.ErrNotFound) {
		webjson.Error(w, http.StatusNotFound, "account no longer exists")
		return
	}
	if err != nil {
		webjson.StoreError(w, h.log, "load user", err)
		return
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)

	report := weeklyReport{
		From:          from,
		To:            now,
		FeelingCounts: map[string]int{},
		Entries:       []models.MoodEntry{},
	}
	sum := 0
	var week []models.MoodEntry
	for _, e := range user.MoodEntries {
		if e.RecordedAt.Before(from) {
			continue
		}
		week = append(week, e)
		report.FeelingCounts[e.Feeling]++
		sum += e.Level
	}
	report.TotalEntries = len(week)
	if report.TotalEntries > 0 {
		report.AverageLevel = float64(sum) / float64(report.TotalEntries)
	}

	// Entries append in insertion order, so the newest are at the end.
	sort.SliceStable(week, func(i, j int) bool {
		return week[i].RecordedAt.After(week[j].RecordedAt)
	})
	if len(week) > weeklyReportEntries {
		week = week[:weeklyReportEntries]
	}
	report.Entries = append(report.Entries, week...)

	webjson.Write(w, http.StatusOK, report)
}
