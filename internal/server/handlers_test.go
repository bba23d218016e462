package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
	"github.com/wldnjs95/workout-tracker-webapp/internal/storage"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	rows     []models.WorkoutRow
	total    int
	category string

	inserted  []models.WorkoutRow
	replaced  []models.WorkoutRow
	replaceID string

	replaceErr error
}

func (f *fakeStore) InsertWorkoutRows(ctx context.Context, rows []models.WorkoutRow) (int64, error) {
	f.inserted = append(f.inserted, rows...)
	return int64(len(rows)), nil
}

func (f *fakeStore) ListPage(ctx context.Context, page, limit int) ([]models.WorkoutRow, int, error) {
	return f.rows, f.total, nil
}

func (f *fakeStore) QueryRowsByID(ctx context.Context, id string) ([]models.WorkoutRow, error) {
	var out []models.WorkoutRow
	for _, r := range f.rows {
		if r.ID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ReplaceWorkout(ctx context.Context, id string, rows []models.WorkoutRow) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaceID = id
	f.replaced = rows
	return nil
}

func (f *fakeStore) DeleteByDate(ctx context.Context, date string) (int64, error) {
	return 1, nil
}

func (f *fakeStore) DeleteExercise(ctx context.Context, date, exerciseName string) (int64, error) {
	return 1, nil
}

func (f *fakeStore) MostFrequentCategory(ctx context.Context) (string, error) {
	return f.category, nil
}

func newTestServer(store Store) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, log)
}

// TestListWorkoutsDefaults verifies GET /api/workouts with no query
// parameters uses page 1 / limit 10 and returns an empty data array
// (not null) when nothing is stored.
func TestListWorkoutsDefaults(t *testing.T) {
	s := newTestServer(&fakeStore{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workouts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want empty data array", rec.Body.String())
	}

	var list models.WorkoutList
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if list.Page != 1 || list.Limit != 10 {
		t.Errorf("page/limit = %d/%d, want defaults 1/10", list.Page, list.Limit)
	}
}

// TestListWorkoutsRejectsBadPagination verifies out-of-range page and
// limit values produce 400 with a detail body.
func TestListWorkoutsRejectsBadPagination(t *testing.T) {
	s := newTestServer(&fakeStore{})
	for _, target := range []string{
		"/api/workouts?page=0",
		"/api/workouts?page=abc",
		"/api/workouts?limit=0",
		"/api/workouts?limit=101",
	} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["detail"] == "" {
			t.Errorf("%s: body lacks detail field: %s", target, rec.Body.String())
		}
	}
}

// TestGetWorkoutNotFound verifies the 404 detail for an unknown id.
func TestGetWorkoutNotFound(t *testing.T) {
	s := newTestServer(&fakeStore{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workouts/wk-missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["detail"] != "Workout not found" {
		t.Errorf("detail = %q, want %q", body["detail"], "Workout not found")
	}
}

// TestGetWorkoutReturnsFlatRows verifies GET /api/workouts/{id} wraps
// the id's rows in a data field.
func TestGetWorkoutReturnsFlatRows(t *testing.T) {
	store := &fakeStore{rows: []models.WorkoutRow{
		{ID: "wk-1", Date: "2024-01-01", Exercise: "Bench", SetNumber: "1"},
		{ID: "wk-1", Date: "2024-01-01", Exercise: "Bench", SetNumber: "2"},
		{ID: "wk-2", Date: "2024-01-02", Exercise: "Squat", SetNumber: "1"},
	}}
	s := newTestServer(store)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workouts/wk-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Data []models.WorkoutRow `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(body.Data) != 2 {
		t.Errorf("rows = %d, want the 2 rows of wk-1", len(body.Data))
	}
}

// TestCreateWorkoutFlattens verifies POST /api/workouts stores one row
// per set with positional set numbers.
func TestCreateWorkoutFlattens(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store)

	payload := `{
		"id": "wk-1", "date": "2024-01-01", "category": "Push",
		"exercises": [{
			"name": "Bench", "intensity": "80kg",
			"sets": [{"plan": "5", "actual": "5"}, {"plan": "5", "actual": "4"}]
		}]
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workouts", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(store.inserted) != 2 {
		t.Fatalf("inserted rows = %d, want 2", len(store.inserted))
	}
	if store.inserted[0].SetNumber != "1" || store.inserted[1].SetNumber != "2" {
		t.Errorf("set numbers = %q, %q, want positional 1, 2",
			store.inserted[0].SetNumber, store.inserted[1].SetNumber)
	}
	if store.inserted[0].Exercise != "Bench" || store.inserted[0].Intensity != "80kg" {
		t.Errorf("row = %+v, want exercise fields flattened onto it", store.inserted[0])
	}
}

// TestUpdateWorkoutEmptyStore verifies PUT against an empty store
// returns the 404 detail.
func TestUpdateWorkoutEmptyStore(t *testing.T) {
	store := &fakeStore{replaceErr: storage.ErrEmptyStore}
	s := newTestServer(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/workouts/wk-1",
		strings.NewReader(`{"id": "wk-1", "exercises": []}`))
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["detail"] != "Cannot update workout in an empty store." {
		t.Errorf("detail = %q, want empty-store message", body["detail"])
	}
}

// TestUpdateWorkoutReplacesByPathID verifies the path id, not the body
// id, addresses the replaced workout.
func TestUpdateWorkoutReplacesByPathID(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/workouts/wk-path",
		strings.NewReader(`{"id": "wk-body", "exercises": [{"name": "Row", "sets": [{"plan": "8"}]}]}`))
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if store.replaceID != "wk-path" {
		t.Errorf("replace id = %q, want the path id", store.replaceID)
	}
	if len(store.replaced) != 1 {
		t.Errorf("replaced rows = %d, want 1", len(store.replaced))
	}
}

// TestStats verifies the stats payload shape.
func TestStats(t *testing.T) {
	s := newTestServer(&fakeStore{category: "Push"})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workouts/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats models.CategoryStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if stats.MostFrequentCategory != "Push" {
		t.Errorf("most_frequent_category = %q, want Push", stats.MostFrequentCategory)
	}
}

// TestDeleteExercise verifies the delete-exercise request decodes the
// camelCase field names the frontend sends.
func TestDeleteExercise(t *testing.T) {
	s := newTestServer(&fakeStore{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workouts/delete-exercise",
		strings.NewReader(`{"date": "2024-01-01", "exerciseName": "Bench"}`))
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Bench") {
		t.Errorf("body = %s, want confirmation naming the exercise", rec.Body.String())
	}
}
