package mood_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/features/mood"
	"github.com/mindhaven/mindhaven/internal/app/system/auth"
	"github.com/mindhaven/mindhaven/internal/testutil"
)

func TestRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := mood.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Checker", "checker@example.com")

	body := bytes.NewReader([]byte(`{"level":4,"feeling":"content","notes":"good walk today"}`))
	req := auth.WithUserID(httptest.NewRequest("POST", "/mood", body), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp["level"] != float64(4) || resp["feeling"] != "content" {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestRecord_LevelOutOfRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := mood.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Edge", "edge@example.com")

	body := bytes.NewReader([]byte(`{"level":6,"feeling":"euphoric"}`))
	req := auth.WithUserID(httptest.NewRequest("POST", "/mood", body), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for level 6, got %d", rec.Code)
	}
}

func TestWeeklyReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := mood.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Weekly", "weekly@example.com")

	now := time.Now().UTC()
	fx.AppendMood(ctx, user.ID, 4, "content", now.AddDate(0, 0, -1))
	fx.AppendMood(ctx, user.ID, 2, "anxious", now.AddDate(0, 0, -3))
	// Outside the window, must be excluded.
	fx.AppendMood(ctx, user.ID, 5, "happy", now.AddDate(0, 0, -10))

	req := auth.WithUserID(httptest.NewRequest("GET", "/mood/weekly-report", nil), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.WeeklyReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		TotalEntries  int              `json:"total_entries"`
		AverageLevel  float64          `json:"average_level"`
		FeelingCounts map[string]int   `json:"feeling_counts"`
		Entries       []map[string]any `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.TotalEntries != 2 || len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries in the window, got total=%d len=%d", resp.TotalEntries, len(resp.Entries))
	}
	if resp.AverageLevel != 3 {
		t.Errorf("average_level: got %v, want 3", resp.AverageLevel)
	}
	if resp.FeelingCounts["content"] != 1 || resp.FeelingCounts["anxious"] != 1 {
		t.Errorf("feeling_counts: got %v", resp.FeelingCounts)
	}
	// Newest first.
	if resp.Entries[0]["feeling"] != "content" {
		t.Errorf("entries should be newest first, got %v first", resp.Entries[0]["feeling"])
	}
}

func TestWeeklyReport_CapsEchoedEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := mood.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Prolific", "prolific@example.com")

	now := time.Now().UTC()
	for i := 0; i < 10; i++ {
		fx.AppendMood(ctx, user.ID, 3, "steady", now.Add(-time.Duration(i)*time.Hour))
	}

	req := auth.WithUserID(httptest.NewRequest("GET", "/mood/weekly-report", nil), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.WeeklyReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		TotalEntries int              `json:"total_entries"`
		Entries      []map[string]any `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.TotalEntries != 10 {
		t.Errorf("total_entries: got %d, want 10", resp.TotalEntries)
	}
	if len(resp.Entries) != 7 {
		t.Errorf("echoed entries should cap at 7, got %d", len(resp.Entries))
	}
}

func TestWeeklyReport_NoEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := mood.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Silent", "silent@example.com")

	req := auth.WithUserID(httptest.NewRequest("GET", "/mood/weekly-report", nil), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.WeeklyReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Entries      []map[string]any `json:"entries"`
		AverageLevel float64          `json:"average_level"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Entries) != 0 || resp.AverageLevel != 0 {
		t.Errorf("empty window: got %d entries, average %v", len(resp.Entries), resp.AverageLevel)
	}
}
