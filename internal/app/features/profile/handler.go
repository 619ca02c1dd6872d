// Package profile serves the authenticated user's own account:
// viewing, updating, and deleting it.
package profile

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
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

// profileResponse is the account view returned to its owner. The
// password hash never appears; the activity arrays are summarized as
// counts rather than dumped inline.
type profileResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	NationalID      *string         `json:"national_id,omitempty"`
	BirthDate       *time.Time      `json:"birth_date,omitempty"`
	BloodType       string          `json:"blood_type,omitempty"`
	Allergies       string          `json:"allergies,omitempty"`
	AvatarURL       string          `json:"avatar_url,omitempty"`
	Settings        map[string]any  `json:"settings,omitempty"`
	Address         *models.Address `json:"address,omitempty"`
	RegisteredAt    time.Time       `json:"registered_at"`
	MoodEntryCount  int             `json:"mood_entry_count"`
	SessionCount    int             `json:"session_count"`
	AssessmentCount int             `json:"assessment_count"`
	UnreadNotices   int             `json:"unread_notifications"`
}

func toProfileResponse(u *models.User) profileResponse {
	unread := 0
	for _, n := range u.Notifications {
		if !n.Read {
			unread++
		}
	}
	return profileResponse{
		ID:              u.ID.Hex(),
		Name:            u.Name,
		Email:           u.Email,
		NationalID:      u.NationalID,
		BirthDate:       u.BirthDate,
		BloodType:       u.BloodType,
		Allergies:       u.Allergies,
		AvatarURL:       u.AvatarURL,
		Settings:        u.Settings,
		Address:         u.Address,
		RegisteredAt:    u.RegisteredAt,
		MoodEntryCount:  len(u.MoodEntries),
		SessionCount:    len(u.MeditationHistory),
		AssessmentCount: len(u.AssessmentResults),
		UnreadNotices:   unread,
	}
}

// Get handles GET /profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.CurrentUserID(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.users.GetByHexID(ctx, userID)
	if errors.Is(err, userstore.ErrNotFound) {
		webjson.Error(w, http.StatusNotFound, "account no longer exists")
		return
	}
	if err != nil {
		webjson.StoreError(w, h.log, "load profile", err)
		return
	}

	webjson.Write(w, http.StatusOK, toProfileResponse(user))
}

type updateRequest struct {
	Name       *string         `json:"name,omitempty"`
	NationalID *string         `json:"national_id,omitempty"`
	BirthDate  *time.Time      `json:"birth_date,omitempty"`
	BloodType  *string         `json:"blood_type,omitempty"`
	Allergies  *string         `json:"allergies,omitempty"`
	AvatarURL  *string         `json:"avatar_url,omitempty"`
	Settings   map[string]any  `json:"settings,omitempty"`
	Address    *models.Address `json:"address,omitempty"`
}

// Update handles PUT /profile. Only the fields present in the body are
// touched; email and password have their own flows and are not
// updatable here.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.CurrentUserID(r)

	var req updateRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Name != nil {
		clean := sanitize.Text(*req.Name)
		if clean == "" {
			webjson.ValidationError(w, map[string]string{"name": "must not be empty"})
			return
		}
		req.Name = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.users.GetByHexID(ctx, userID)
	if errors.Is(err, userstore.ErrNotFound) {
		webjson.Error(w, http.StatusNotFound, "account no longer exists")
		return
	}
	if err != nil {
		webjson.StoreError(w, h.log, "load profile", err)
		return
	}

	patch := userstore.ProfilePatch{
		Name:       req.Name,
		NationalID: req.NationalID,
		BirthDate:  req.BirthDate,
		BloodType:  req.BloodType,
		Allergies:  req.Allergies,
		AvatarURL:  req.AvatarURL,
		Settings:   req.Settings,
		Address:    req.Address,
	}

	err = h.users.UpdateProfile(ctx, id.ID, patch)
	switch {
	case errors.Is(err, userstore.ErrDuplicateNationalID):
		webjson.ErrorCode(w, http.StatusConflict, "national id is already registered", "duplicate_national_id")
		return
	case errors.Is(err, userstore.ErrNotFound):
		webjson.Error(w, http.StatusNotFound, "account no longer exists")
		return
	case err != nil:
		webjson.StoreError(w, h.log, "update profile", err)
		return
	}

	updated, err := h.users.GetByID(ctx, id.ID)
	if err != nil {
		webjson.StoreError(w, h.log, "reload profile", err)
		return
	}
	webjson.Write(w, http.StatusOK, toProfileResponse(updated))
}

// Delete handles DELETE /users/{id}. Users can delete only their own
// account; the id in the path must match the token subject.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.CurrentUserID(r)
	pathID := chi.URLParam(r, "id")

	if pathID != userID {
		webjson.Error(w, http.StatusForbidden, "you can only delete your own account")
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

	if _, err := h.users.Delete(ctx, user.ID); err != nil {
		webjson.StoreError(w, h.log, "delete user", err)
		return
	}

	h.log.Info("user deleted own account", zap.String("user_id", userID))
	w.WriteHeader(http.StatusNoContent)
}
