package paging

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLimitPlusOne(t *testing.T) {
	want := int64(PageSize + 1)
	if got := LimitPlusOne(); got != want {
		t.Errorf("LimitPlusOne() = %d, want %d", got, want)
	}
}

func TestTrimPage(t *testing.T) {
	tests := []struct {
		name       string
		rows       []int
		before     string
		after      string
		wantLen    int
		wantResult Result
	}{
		{
			name:       "first page with no extra",
			rows:       []int{1, 2, 3},
			wantLen:    3,
			wantResult: Result{HasPrev: false, HasNext: false},
		},
		{
			name:       "first page with extra (has next)",
			rows:       make([]int, PageSize+1),
			wantLen:    PageSize,
			wantResult: Result{HasPrev: false, HasNext: true},
		},
		{
			name:       "forward page with extra",
			rows:       make([]int, PageSize+1),
			after:      "cursor123",
			wantLen:    PageSize,
			wantResult: Result{HasPrev: true, HasNext: true},
		},
		{
			name:       "forward page without extra",
			rows:       []int{1, 2, 3},
			after:      "cursor123",
			wantLen:    3,
			wantResult: Result{HasPrev: true, HasNext: false},
		},
		{
			name:       "backward page with extra",
			rows:       make([]int, PageSize+1),
			before:     "cursor123",
			wantLen:    PageSize,
			wantResult: Result{HasPrev: true, HasNext: true},
		},
		{
			name:       "backward page without extra",
			rows:       []int{1, 2, 3},
			before:     "cursor123",
			wantLen:    3,
			wantResult: Result{HasPrev: false, HasNext: true},
		},
		{
			name:       "empty rows",
			rows:       []int{},
			wantLen:    0,
			wantResult: Result{HasPrev: false, HasNext: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := tt.rows
			got := TrimPage(&rows, tt.before, tt.after)
			if len(rows) != tt.wantLen {
				t.Errorf("len(rows) = %d, want %d", len(rows), tt.wantLen)
			}
			if got != tt.wantResult {
				t.Errorf("TrimPage() = %+v, want %+v", got, tt.wantResult)
			}
		})
	}
}

func TestTrimPage_BackwardTrimsFirst(t *testing.T) {
	rows := make([]int, 0, PageSize+1)
	for i := 0; i <= PageSize; i++ {
		rows = append(rows, i)
	}
	TrimPage(&rows, "cursor", "")
	if rows[0] != 1 {
		t.Errorf("backward trim should drop the first row, got leading %d", rows[0])
	}
}

func TestConfigureKeyset(t *testing.T) {
	t.Run("no cursors", func(t *testing.T) {
		cfg := ConfigureKeyset("", "")
		if cfg.Direction != Forward || cfg.SortOrder != 1 || cfg.Cursor != nil {
			t.Errorf("ConfigureKeyset(\"\", \"\") = %+v", cfg)
		}
	})
	t.Run("before wins", func(t *testing.T) {
		cfg := ConfigureKeyset("garbage", "alsogarbage")
		if cfg.Direction != Backward || cfg.SortOrder != -1 {
			t.Errorf("before should page backwards, got %+v", cfg)
		}
		// Undecodable cursors are ignored rather than failing the request.
		if cfg.Cursor != nil {
			t.Errorf("garbage cursor should not decode, got %+v", cfg.Cursor)
		}
	})
}

func TestKeysetWindow_NoCursor(t *testing.T) {
	cfg := ConfigureKeyset("", "")
	if w := cfg.KeysetWindow("title"); w != nil {
		t.Errorf("expected nil window without cursor, got %v", w)
	}
}

func TestReverse(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	Reverse(rows)
	want := []int{4, 3, 2, 1}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("Reverse() = %v, want %v", rows, want)
		}
	}
}

func TestBuildCursors(t *testing.T) {
	type row struct {
		title string
		id    primitive.ObjectID
	}
	rows := []row{
		{title: "Alpha", id: primitive.NewObjectID()},
		{title: "Omega", id: primitive.NewObjectID()},
	}
	prev, next := BuildCursors(rows,
		func(r row) string { return r.title },
		func(r row) primitive.ObjectID { return r.id })
	if prev == "" || next == "" {
		t.Fatalf("cursors should be non-empty: prev=%q next=%q", prev, next)
	}
	if prev == next {
		t.Errorf("distinct rows should produce distinct cursors")
	}
}

func TestBuildCursors_Empty(t *testing.T) {
	prev, next := BuildCursors(nil,
		func(r int) string { return "" },
		func(r int) primitive.ObjectID { return primitive.NilObjectID })
	if prev != "" || next != "" {
		t.Errorf("empty rows should yield empty cursors, got %q %q", prev, next)
	}
}
