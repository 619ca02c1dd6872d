// internal/app/system/auth/auth.go

// Package auth issues and verifies the bearer tokens the API runs on:
// a short-lived access token and a long-lived refresh token, both HS256.
// The token subject is the user's document id, which handlers compare
// against path parameters for owner-only access.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds carried in claims so a refresh token can never be replayed
// as an access token.
const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

var (
	// ErrTokenExpired is returned for structurally valid but expired tokens.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens, bad signatures, and kind mismatches.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims are the JWT claims for both token kinds. Subject is the user id hex.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a single shared secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New creates a Manager. Typical TTLs are one hour for access tokens and
// thirty days for refresh tokens.
func New(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (m *Manager) AccessTTL() time.Duration {
	return m.accessTTL
}

// IssueAccess creates a signed access token for the given user id.
func (m *Manager) IssueAccess(userID string) (string, error) {
	return m.issue(userID, kindAccess, m.accessTTL)
}

// IssueRefresh creates a signed refresh token for the given user id.
// Refresh tokens carry a unique JTI so individual tokens are
// distinguishable in logs.
func (m *Manager) IssueRefresh(userID string) (string, error) {
	return m.issue(userID, kindRefresh, m.refreshTTL)
}

func (m *Manager) issue(userID, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if kind == kindRefresh {
		claims.ID = uuid.NewString()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyAccess parses and validates an access token, returning its claims.
func (m *Manager) VerifyAccess(tokenString string) (*Claims, error) {
	return m.verify(tokenString, kindAccess)
}

// VerifyRefresh parses and validates a refresh token, returning its claims.
func (m *Manager) VerifyRefresh(tokenString string) (*Claims, error) {
	return m.verify(tokenString, kindRefresh)
}

func (m *Manager) verify(tokenString, wantKind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != wantKind || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
