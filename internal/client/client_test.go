package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
)

// TestListWorkoutsSendsPagination verifies the page/limit query
// parameters and response decoding.
func TestListWorkoutsSendsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/workouts" {
			t.Errorf("path = %q, want /api/workouts", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		json.NewEncoder(w).Encode(models.WorkoutList{
			Data:  []models.WorkoutRow{{ID: "wk-1", Date: "2024-01-01"}},
			Total: 12, Page: 2, Limit: 5,
		})
	}))
	defer srv.Close()

	list, err := New(srv.URL).ListWorkouts(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("ListWorkouts error: %v", err)
	}
	if list.Total != 12 || len(list.Data) != 1 {
		t.Errorf("list = total %d / %d rows, want 12 / 1", list.Total, len(list.Data))
	}
}

// TestCreateWorkoutPostsJSON verifies the request body and content type
// of a create call.
func TestCreateWorkoutPostsJSON(t *testing.T) {
	var got models.Workout
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "Workout added successfully"})
	}))
	defer srv.Close()

	in := models.Workout{ID: "wk-1", Date: "2024-01-01", Category: "Push"}
	if err := New(srv.URL).CreateWorkout(context.Background(), in); err != nil {
		t.Fatalf("CreateWorkout error: %v", err)
	}
	if got.ID != "wk-1" || got.Category != "Push" {
		t.Errorf("server received %+v, want the submitted workout", got)
	}
}

// TestErrorSurfacesDetailVerbatim verifies the server's {detail} body
// becomes the error message unchanged.
func TestErrorSurfacesDetailVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Workout not found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetWorkoutRows(context.Background(), "wk-missing")
	if err == nil {
		t.Fatal("GetWorkoutRows succeeded, want error")
	}
	if err.Error() != "Workout not found" {
		t.Errorf("error = %q, want the detail text verbatim", err.Error())
	}
}

// TestErrorWithoutDetailFallsBack verifies non-JSON error bodies yield
// the generic status message.
func TestErrorWithoutDetailFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal failure", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteByDate(context.Background(), "2024-01-01")
	if err == nil {
		t.Fatal("DeleteByDate succeeded, want error")
	}
	if err.Error() != "HTTP error, status 500" {
		t.Errorf("error = %q, want %q", err.Error(), "HTTP error, status 500")
	}
}

// TestUpdateWorkoutEscapesID verifies the workout id is path-escaped in
// the PUT URL.
func TestUpdateWorkoutEscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/api/workouts/wk-1" {
			t.Errorf("path = %q, want /api/workouts/wk-1", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	err := New(srv.URL).UpdateWorkout(context.Background(), models.Workout{ID: "wk-1"})
	if err != nil {
		t.Fatalf("UpdateWorkout error: %v", err)
	}
}
