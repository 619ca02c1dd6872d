// Package history records completed meditation sessions against the
// caller's account.
package history

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	meditationstore "github.com/mindhaven/mindhaven/internal/app/store/meditations"
	userstore "github.com/mindhaven/mindhaven/internal/app/store/users"
	"github.com/mindhaven/mindhaven/internal/app/system/auth"
	"github.com/mindhaven/mindhaven/internal/app/system/timeouts"
	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

type Handler struct {
	users       *userstore.Store
	meditations *meditationstore.Store
	log         *zap.Logger
}

func NewHandler(gw *gateway.Gateway, logger *zap.Logger) *Handler {
	return &Handler{
		users:       userstore.New(gw),
		meditations: meditationstore.New(gw),
		log:         logger,
	}
}

type recordRequest struct {
	MeditationID  string `json:"meditation_id"`
	ActualMinutes *int   `json:"actual_minutes,omitempty"`
}

// Record handles POST /meditations/history. The meditation must exist
// in the catalog at the time the session is logged; the reference can
// dangle later if the catalog entry is removed.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	userID := auth.CurrentUserID(r)

	var req recordRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	medID, err := primitive.ObjectIDFromHex(req.MeditationID)
	if err != nil {
		webjson.ValidationError(w, map[string]string{
			"meditation_id": "must be a valid id",
		})
		return
	}
	if req.ActualMinutes != nil && *req.ActualMinutes <= 0 {
		webjson.ValidationError(w, map[string]string{
			"actual_minutes": "must be greater than zero",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.meditations.GetByID(ctx, medID); err != nil {
		if errors.Is(err, meditationstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "meditation not found")
			return
		}
		webjson.StoreError(w, h.log, "load meditation", err)
		return
	}

	user, err := h.users.GetByHexID(ctx, userID)
	if errors.Is(err, userstore.ErrNotFound) {
		webjson.Error(w, http.StatusNotFound, "account no longer exists")
		return
	}
	if err != nil {
		webjson.StoreError(w, h.log, "load user", err)
		return
	}

	session := models.MeditationSession{
		MeditationID:  medID,
		CompletedAt:   time.Now().UTC(),
		ActualMinutes: req.ActualMinutes,
	}
	if err := h.users.AppendMeditationSession(ctx, user.ID, session); err != nil {
		webjson.StoreError(w, h.log, "append session", err)
		return
	}

	webjson.Write(w, http.StatusCreated, session)
}
