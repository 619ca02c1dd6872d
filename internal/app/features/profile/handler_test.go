package profile_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/features/profile"
	userstore "github.com/mindhaven/mindhaven/internal/app/store/users"
	"github.com/mindhaven/mindhaven/internal/app/system/auth"
	"github.com/mindhaven/mindhaven/internal/domain/models"
	"github.com/mindhaven/mindhaven/internal/testutil"
)

func TestGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	gw := testutil.NewGateway(db)
	users := userstore.New(gw)
	handler := profile.NewHandler(gw, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := users.Create(ctx, models.User{
		Name: "Viewer", Email: "viewer@example.com", PasswordHash: "h",
		BloodType: "A-",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := auth.WithUserID(httptest.NewRequest("GET", "/profile", nil), created.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp["email"] != "viewer@example.com" {
		t.Errorf("email: got %v", resp["email"])
	}
	if resp["blood_type"] != "A-" {
		t.Errorf("blood_type: got %v", resp["blood_type"])
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Error("password hash must never appear in the response")
	}
}

func TestGet_DeletedAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := profile.NewHandler(testutil.NewGateway(db), zap.NewNop())

	req := auth.WithUserID(httptest.NewRequest("GET", "/profile", nil), primitive.NewObjectID().Hex())
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	gw := testutil.NewGateway(db)
	users := userstore.New(gw)
	handler := profile.NewHandler(gw, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := users.Create(ctx, models.User{
		Name: "Before", Email: "update@example.com", PasswordHash: "h",
		BloodType: "B+",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	body := bytes.NewReader([]byte(`{"name":"After <script>alert(1)</script>"}`))
	req := auth.WithUserID(httptest.NewRequest("PUT", "/profile", body), created.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	found, err := users.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	// Markup is stripped, untouched fields survive.
	if found.Name != "After" {
		t.Errorf("Name: got %q, want sanitized %q", found.Name, "After")
	}
	if found.BloodType != "B+" {
		t.Errorf("BloodType: got %q, want unchanged", found.BloodType)
	}
}

func TestDelete_OwnAccountOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	gw := testutil.NewGateway(db)
	users := userstore.New(gw)
	handler := profile.NewHandler(gw, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner, err := users.Create(ctx, models.User{
		Name: "Owner", Email: "owner@example.com", PasswordHash: "h",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other, err := users.Create(ctx, models.User{
		Name: "Other", Email: "other@example.com", PasswordHash: "h",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Deleting someone else's account is forbidden.
	req := httptest.NewRequest("DELETE", "/users/"+other.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", other.ID.Hex())
	req = auth.WithUserID(req, owner.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if _, err := users.GetByID(ctx, other.ID); err != nil {
		t.Errorf("other account must survive: %v", err)
	}

	// Deleting your own account works.
	req = httptest.NewRequest("DELETE", "/users/"+owner.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", owner.ID.Hex())
	req = auth.WithUserID(req, owner.ID.Hex())
	rec = httptest.NewRecorder()
	handler.Delete(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := users.GetByID(ctx, owner.ID); err != userstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after self-delete, got %v", err)
	}
}
