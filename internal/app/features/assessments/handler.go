// Package assessments serves self-assessment submission and history.
// Scoring happens server side: the submitted answers are summed and
// mapped to a severity band, so clients cannot fabricate a score.
package assessments

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
	"github.com/mindhaven/mindhaven/internal/app/system/normalize"
	"github.com/mindhaven/mindhaven/internal/app/system/timeouts"
	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

const (
	maxAnswerValue = 3
	maxAnswerCount = 50
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

type submitRequest struct {
	Kind    string         `json:"kind"`
	Answers map[string]int `json:"answers"`
}

// resultText maps a summed score to a severity band. The bands follow
// the usual 0-3 per-question questionnaire scales.
func resultText(score int) string {
	switch {
	case score < 5:
		return "minimal"
	case score < 10:
		return "mild"
	case score < 15:
		return "moderate"
	default:
		return "severe"
	}
}

// Submit handles POST /assessments.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := auth.CurrentUserID(r)

	var req submitRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Kind == "" {
		webjson.ValidationError(w, map[string]string{"kind": "is required"})
		return
	}
	if len(req.Answers) == 0 {
		webjson.ValidationError(w, map[string]string{"answers": "must not be empty"})
		return
	}
	if len(req.Answers) > maxAnswerCount {
		webjson.ValidationError(w, map[string]string{"answers": "too many answers"})
		return
	}

	score := 0
	answers := make(map[string]any, len(req.Answers))
	for q, v := range req.Answers {
		if v < 0 || v > maxAnswerValue {
			webjson.ValidationError(w, map[string]string{
				"answers": "each answer must be between 0 and 3",
			})
			return
		}
		score += v
		answers[q] = v
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

	result := models.AssessmentResult{
		Kind:       normalize.AssessmentKind(req.Kind),
		Answers:    answers,
		Score:      score,
		ResultText: resultText(score),
		TakenAt:    time.Now().UTC(),
	}
	if err := h.users.AppendAssessmentResult(ctx, user.ID, result); err != nil {
		webjson.StoreError(w, h.log, "append assessment", err)
		return
	}

	webjson.Write(w, http.StatusCreated, result)
}

// History handles GET /assessments/history, most recent first. An
// optional ?kind= parameter narrows to one assessment kind.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
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

	kind := r.URL.Query().Get("kind")
	results := []models.AssessmentResult{}
	for _, res := range user.AssessmentResults {
		if kind != "" && res.Kind != normalize.AssessmentKind(kind) {
			continue
		}
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].TakenAt.After(results[j].TakenAt)
	})

	webjson.Write(w, http.StatusOK, results)
}
