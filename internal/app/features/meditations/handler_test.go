package meditations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven/internal/app/features/meditations"
	"github.com/mindhaven/mindhaven/internal/testutil"
)

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := meditations.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMeditation(ctx, "Alpha", 10, "breathing", "beginner")
	fx.CreateMeditation(ctx, "Beta", 20, "sleep", "advanced")

	req := httptest.NewRequest("GET", "/meditations", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page struct {
		Items   []map[string]any `json:"items"`
		HasPrev bool             `json:"has_prev"`
		HasNext bool             `json:"has_next"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 meditations, got %d", len(page.Items))
	}
	// Title ascending.
	if page.Items[0]["title"] != "Alpha" || page.Items[1]["title"] != "Beta" {
		t.Errorf("order: got %v then %v", page.Items[0]["title"], page.Items[1]["title"])
	}
	if page.HasPrev || page.HasNext {
		t.Errorf("two rows should fit one page: prev=%v next=%v", page.HasPrev, page.HasNext)
	}
}

func TestList_FilterByCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := meditations.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMeditation(ctx, "Easy", 10, "breathing", "beginner")
	fx.CreateMeditation(ctx, "Hard", 45, "body-scan", "advanced")

	req := httptest.NewRequest("GET", "/meditations?category=advanced", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(list) != 1 || list[0]["title"] != "Hard" {
		t.Errorf("category filter: got %v", list)
	}
}

func TestDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := meditations.NewHandler(testutil.NewGateway(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	med := fx.CreateMeditation(ctx, "Lone", 15, "mindfulness", "intermediate")

	req := httptest.NewRequest("GET", "/meditations/"+med.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", med.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Detail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp["title"] != "Lone" {
		t.Errorf("title: got %v", resp["title"])
	}
}

func TestDetail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := meditations.NewHandler(testutil.NewGateway(db), zap.NewNop())

	req := httptest.NewRequest("GET", "/meditations/bogus", nil)
	req = testutil.WithChiURLParam(req, "id", "bogus")
	rec := httptest.NewRecorder()
	handler.Detail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
