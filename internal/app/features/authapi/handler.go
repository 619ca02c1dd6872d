// Package authapi serves registration, login, and token refresh.
package authapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	userstore "github.com/mindhaven/mindhaven/internal/app/store/users"
	"github.com/mindhaven/mindhaven/internal/app/system/auth"
	"github.com/mindhaven/mindhaven/internal/app/system/sanitize"
	"github.com/mindhaven/mindhaven/internal/app/system/timeouts"
	"github.com/mindhaven/mindhaven/internal/app/system/webjson"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

const minPasswordLength = 6

// Handler holds dependencies for the authentication endpoints.
type Handler struct {
	users *userstore.Store
	auth  *auth.Manager
	log   *zap.Logger
}

func NewHandler(gw *gateway.Gateway, authMgr *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		users: userstore.New(gw),
		auth:  authMgr,
		log:   logger,
	}
}

type registerRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	NationalID *string    `json:"national_id,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
}

type registerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Register handles POST /register. Duplicate email or national id
// returns 409 with a field-level message rather than a bare conflict.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if len(req.Password) < minPasswordLength {
		webjson.ValidationError(w, map[string]string{
			"password": "must be at least 6 characters",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		webjson.StoreError(w, h.log, "hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.users.Create(ctx, models.User{
		Name:         sanitize.Text(req.Name),
		Email:        req.Email,
		PasswordHash: string(hash),
		NationalID:   req.NationalID,
		BirthDate:    req.BirthDate,
	})
	switch {
	case errors.Is(err, userstore.ErrDuplicateEmail):
		webjson.ErrorCode(w, http.StatusConflict, "email is already registered", "duplicate_email")
		return
	case errors.Is(err, userstore.ErrDuplicateNationalID):
		webjson.ErrorCode(w, http.StatusConflict, "national id is already registered", "duplicate_national_id")
		return
	case userstore.IsValidation(err):
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		webjson.StoreError(w, h.log, "create user", err)
		return
	}

	h.log.Info("user registered", zap.String("user_id", created.ID.Hex()))
	webjson.Write(w, http.StatusCreated, registerResponse{
		ID:           created.ID.Hex(),
		Name:         created.Name,
		Email:        created.Email,
		RegisteredAt: created.RegisteredAt,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login handles POST /login. Unknown email and wrong password produce
// the same 401 so the endpoint does not leak which emails exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		webjson.ErrorCode(w, http.StatusUnauthorized, "invalid email or password", "invalid_credentials")
		return
	}
	if err != nil {
		webjson.StoreError(w, h.log, "lookup user", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		webjson.ErrorCode(w, http.StatusUnauthorized, "invalid email or password", "invalid_credentials")
		return
	}

	access, err := h.auth.IssueAccess(user.ID.Hex())
	if err != nil {
		webjson.StoreError(w, h.log, "issue access token", err)
		return
	}
	refresh, err := h.auth.IssueRefresh(user.ID.Hex())
	if err != nil {
		webjson.StoreError(w, h.log, "issue refresh token", err)
		return
	}

	h.log.Info("user logged in", zap.String("user_id", user.ID.Hex()))
	webjson.Write(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(h.auth.AccessTTL().Seconds()),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /refresh: a valid refresh token yields a fresh
// access token. Refresh tokens are not rotated.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	claims, err := h.auth.VerifyRefresh(req.RefreshToken)
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		webjson.ErrorCode(w, http.StatusUnauthorized, "refresh token has expired", "token_expired")
		return
	case err != nil:
		webjson.ErrorCode(w, http.StatusUnauthorized, "invalid refresh token", "invalid_token")
		return
	}

	// The subject must still resolve to a live account.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if _, err := h.users.GetByHexID(ctx, claims.Subject); err != nil {
		webjson.ErrorCode(w, http.StatusUnauthorized, "invalid refresh token", "invalid_token")
		return
	}

	access, err := h.auth.IssueAccess(claims.Subject)
	if err != nil {
		webjson.StoreError(w, h.log, "issue access token", err)
		return
	}

	webjson.Write(w, http.StatusOK, tokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.auth.AccessTTL().Seconds()),
	})
}
