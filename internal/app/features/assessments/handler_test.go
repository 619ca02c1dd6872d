package assessments_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/features/assessments"
	"github.com/mindhaven/mindhaven/internal/app/system/auth"
	"github.com/mindhaven/mindhaven/internal/domain/models"
	"github.com/mindhaven/mindhaven/internal/testutil"
)

func TestSubmit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := assessments.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Taker", "taker@example.com")

	body := bytes.NewReader([]byte(`{"kind":"Anxiety Screening","answers":{"q1":3,"q2":2,"q3":1}}`))
	req := auth.WithUserID(httptest.NewRequest("POST", "/assessments", body), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Submit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Kind       string `json:"kind"`
		Score      int    `json:"score"`
		ResultText string `json:"result_text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Kind != models.AssessmentAnxiety {
		t.Errorf("kind: got %q, want %q", resp.Kind, models.AssessmentAnxiety)
	}
	if resp.Score != 6 {
		t.Errorf("score: got %d, want 6 (server computed)", resp.Score)
	}
	if resp.ResultText != "mild" {
		t.Errorf("result_text: got %q, want mild", resp.ResultText)
	}
}

func TestSubmit_RejectsBadAnswers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := assessments.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Cheat", "cheat@example.com")

	cases := []string{
		`{"kind":"stress","answers":{}}`,
		`{"answers":{"q1":1}}`,
		`{"kind":"stress","answers":{"q1":9}}`,
		`{"kind":"stress","answers":{"q1":-1}}`,
	}
	for _, c := range cases {
		req := auth.WithUserID(httptest.NewRequest("POST", "/assessments", bytes.NewReader([]byte(c))), user.ID.Hex())
		rec := httptest.NewRecorder()
		handler.Submit(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", c, rec.Code)
		}
	}
}

func TestHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := assessments.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Repeat", "repeat@example.com")

	submit := func(body string) {
		t.Helper()
		req := auth.WithUserID(httptest.NewRequest("POST", "/assessments", bytes.NewReader([]byte(body))), user.ID.Hex())
		rec := httptest.NewRecorder()
		handler.Submit(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("submit failed: %d %s", rec.Code, rec.Body.String())
		}
	}
	submit(`{"kind":"anxiety","answers":{"q1":1}}`)
	submit(`{"kind":"stress","answers":{"q1":2}}`)

	req := auth.WithUserID(httptest.NewRequest("GET", "/assessments/history", nil), user.ID.Hex())
	rec := httptest.NewRecorder()
	handler.History(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var all []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 results, got %d", len(all))
	}

	// ?kind= narrows the list.
	req = auth.WithUserID(httptest.NewRequest("GET", "/assessments/history?kind=stress", nil), user.ID.Hex())
	rec = httptest.NewRecorder()
	handler.History(rec, req)
	var filtered []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(filtered) != 1 || filtered[0]["kind"] != models.AssessmentStress {
		t.Errorf("kind filter: got %v", filtered)
	}
}
