package models

import (
	"fmt"
	"time"
)

// Set is one planned/performed unit within an exercise. SetNumber is
// assigned by position at submission time, 1-based and dense within its
// exercise; it is not a durable identity across edits.
type Set struct {
	SetNumber int    `json:"setNumber"`
	Plan      string `json:"plan"`
	Actual    string `json:"actual"`
}

// Exercise is one movement within a workout. Order of Sets is
// significant and user-reorderable.
type Exercise struct {
	Name      string `json:"name"`
	Intensity string `json:"intensity"`
	Notes     string `json:"notes,omitempty"`
	Sets      []Set  `json:"sets"`
}

// Workout is one logged or planned session, the nested view
// reconstructed from flat rows.
type Workout struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"`
	Category  string     `json:"category"`
	Exercises []Exercise `json:"exercises"`
}

// WorkoutRow is the flat, persisted unit: one row per
// (workout, exercise, set) triple. SetNumber travels as a string: the
// storage columns are untyped text and the aggregator parses it
// leniently.
type WorkoutRow struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Category  string `json:"category"`
	Intensity string `json:"intensity"`
	Exercise  string `json:"exercise"`
	SetNumber string `json:"set_number"`
	Plan      string `json:"plan"`
	Actual    string `json:"actual"`
	Notes     string `json:"notes"`
}

// DeleteExerciseRequest targets all rows for one exercise on one date.
type DeleteExerciseRequest struct {
	Date         string `json:"date"`
	ExerciseName string `json:"exerciseName"`
}

// WorkoutList is the paginated list response. Data holds flat rows;
// Total counts date-groups, not rows, so it matches the number of
// workouts the client will render after grouping.
type WorkoutList struct {
	Data  []WorkoutRow `json:"data"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// CategoryStats is the /api/workouts/stats response.
type CategoryStats struct {
	MostFrequentCategory string `json:"most_frequent_category"`
}

// NewWorkoutID returns a client-generated workout identifier seeded
// from the current time.
func NewWorkoutID(now time.Time) string {
	return fmt.Sprintf("wk-%d", now.UnixMilli())
}
