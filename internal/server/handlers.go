package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
	"github.com/wldnjs95/workout-tracker-webapp/internal/storage"
	"github.com/wldnjs95/workout-tracker-webapp/internal/workout"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello from the backend!"})
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil || page < 1 {
		writeDetail(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxLimit))
		return
	}

	rows, total, err := s.store.ListPage(r.Context(), page, limit)
	if err != nil {
		s.log.Error("list workouts", "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	if rows == nil {
		rows = []models.WorkoutRow{}
	}
	writeJSON(w, http.StatusOK, models.WorkoutList{
		Data:  rows,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	category, err := s.store.MostFrequentCategory(r.Context())
	if err != nil {
		s.log.Error("workout stats", "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.CategoryStats{MostFrequentCategory: category})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rows, err := s.store.QueryRowsByID(r.Context(), id)
	if err != nil {
		s.log.Error("get workout", "id", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(rows) == 0 {
		writeDetail(w, http.StatusNotFound, "Workout not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": rows})
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var wk models.Workout
	if err := json.NewDecoder(r.Body).Decode(&wk); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	inserted, err := s.store.InsertWorkoutRows(r.Context(), workout.Flatten(wk))
	if err != nil {
		s.log.Error("create workout", "id", wk.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Workout added successfully",
		"inserted": inserted,
	})
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var wk models.Workout
	if err := json.NewDecoder(r.Body).Decode(&wk); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	err := s.store.ReplaceWorkout(r.Context(), id, workout.Flatten(wk))
	if errors.Is(err, storage.ErrEmptyStore) {
		writeDetail(w, http.StatusNotFound, "Cannot update workout in an empty store.")
		return
	}
	if err != nil {
		s.log.Error("update workout", "id", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Workout %s updated successfully.", id),
	})
}

func (s *Server) handleDeleteByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	deleted, err := s.store.DeleteByDate(r.Context(), date)
	if err != nil {
		s.log.Error("delete workouts", "date", date, "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("deleted workout rows", "date", date, "rows", deleted)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Workouts for date %s deleted successfully.", date),
	})
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	deleted, err := s.store.DeleteExercise(r.Context(), req.Date, req.ExerciseName)
	if err != nil {
		s.log.Error("delete exercise", "date", req.Date, "exercise", req.ExerciseName, "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("deleted exercise rows", "date", req.Date, "exercise", req.ExerciseName, "rows", deleted)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Exercise '%s' for date %s deleted successfully.", req.ExerciseName, req.Date),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail writes the error body shape the client surfaces verbatim.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
