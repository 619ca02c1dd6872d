package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mindhaven/mindhaven/internal/app/system/auth"
)

func TestIssueAndVerifyAccess(t *testing.T) {
	m := auth.New("test-secret", time.Hour, 30*24*time.Hour)

	token, err := m.IssueAccess("64f000000000000000000001")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	claims, err := m.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if claims.Subject != "64f000000000000000000001" {
		t.Errorf("Subject: got %q", claims.Subject)
	}
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	m := auth.New("test-secret", time.Hour, 30*24*time.Hour)

	refresh, err := m.IssueRefresh("64f000000000000000000001")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	if _, err := m.VerifyAccess(refresh); err != auth.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyRefresh(t *testing.T) {
	m := auth.New("test-secret", time.Hour, 30*24*time.Hour)

	refresh, err := m.IssueRefresh("u1")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	claims, err := m.VerifyRefresh(refresh)
	if err != nil {
		t.Fatalf("VerifyRefresh failed: %v", err)
	}
	if claims.ID == "" {
		t.Error("refresh token should carry a JTI")
	}
}

func TestVerifyAccess_Expired(t *testing.T) {
	m := auth.New("test-secret", -time.Minute, 30*24*time.Hour)

	token, err := m.IssueAccess("u1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	if _, err := m.VerifyAccess(token); err != auth.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	m1 := auth.New("secret-one", time.Hour, time.Hour)
	m2 := auth.New("secret-two", time.Hour, time.Hour)

	token, err := m1.IssueAccess("u1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	if _, err := m2.VerifyAccess(token); err != auth.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRequireAuth(t *testing.T) {
	m := auth.New("test-secret", time.Hour, time.Hour)
	var gotUserID string
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = auth.CurrentUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	// No header.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/profile", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d, want 401", rec.Code)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse 401 body: %v", err)
	}
	if body.Code != "authorization_required" {
		t.Errorf("code: got %q, want authorization_required", body.Code)
	}

	// Garbage token.
	req := httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d, want 401", rec.Code)
	}

	// Valid token.
	token, err := m.IssueAccess("user-42")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	req = httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: got %d, want 200", rec.Code)
	}
	if gotUserID != "user-42" {
		t.Errorf("CurrentUserID: got %q, want user-42", gotUserID)
	}
}
