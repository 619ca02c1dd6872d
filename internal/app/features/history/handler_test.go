package history_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/features/history"
	userstore "github.com/mindhaven/mindhaven/internal/app/store/users"
	"github.com/mindhaven/mindhaven/internal/app/system/auth"
	"github.com/mindhaven/mindhaven/internal/testutil"
)

func TestRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	gw := testutil.NewGateway(db)
	handler := history.NewHandler(gw, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Sitter", "sitter@example.com")
	med := fx.CreateMeditation(ctx, "Session", 10, "breathing", "beginner")

	body := bytes.NewReader([]byte(fmt.Sprintf(`{"meditation_id":%q,"actual_minutes":8}`, med.ID.Hex())))
	req := auth.WithUserID(httptest.NewRequest("POST", "/meditations/history", body), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	found, err := userstore.New(gw).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.MeditationHistory) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(found.MeditationHistory))
	}
	entry := found.MeditationHistory[0]
	if entry.MeditationID != med.ID {
		t.Errorf("meditation_id: got %v, want %v", entry.MeditationID, med.ID)
	}
	if entry.ActualMinutes == nil || *entry.ActualMinutes != 8 {
		t.Errorf("actual_minutes: got %v, want 8", entry.ActualMinutes)
	}
	if entry.CompletedAt.IsZero() {
		t.Error("expected completed_at to be set")
	}
}

func TestRecord_UnknownMeditation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := history.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Loner", "loner@example.com")

	body := bytes.NewReader([]byte(fmt.Sprintf(`{"meditation_id":%q}`, primitive.NewObjectID().Hex())))
	req := auth.WithUserID(httptest.NewRequest("POST", "/meditations/history", body), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown meditation, got %d", rec.Code)
	}
}

func TestRecord_MalformedID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := history.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Typo", "typo@example.com")

	body := bytes.NewReader([]byte(`{"meditation_id":"nope"}`))
	req := auth.WithUserID(httptest.NewRequest("POST", "/meditations/history", body), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", rec.Code)
	}
}
