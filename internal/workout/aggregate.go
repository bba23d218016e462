// Package workout holds the two inverse transforms at the core of the
// tracker: aggregation of flat stored rows into nested Workouts (read
// path) and flattening of a nested Workout back into rows with
// positional set numbers (write path).
package workout

import (
	"errors"
	"sort"
	"strconv"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
)

// ErrNotFound is returned by GroupByID when no row carries a usable id.
var ErrNotFound = errors.New("workout not found")

// GroupByDate reconstructs the list view: one Workout per calendar
// date, most recent first. Rows missing a date or an id are skipped.
// Two sessions sharing a date merge into one Workout under the first
// row's id; the list view conflates workout identity with date.
func GroupByDate(rows []models.WorkoutRow) []models.Workout {
	groups := make(map[string]*models.Workout)
	var order []string

	for _, row := range rows {
		if row.Date == "" || row.ID == "" {
			continue
		}
		w, ok := groups[row.Date]
		if !ok {
			w = &models.Workout{ID: row.ID, Date: row.Date, Category: row.Category}
			groups[row.Date] = w
			order = append(order, row.Date)
		}
		ex := findExercise(w, row, false)
		ex.Sets = append(ex.Sets, rowSet(row))
	}

	result := make([]models.Workout, 0, len(order))
	for _, date := range order {
		w := groups[date]
		sortSets(w)
		result = append(result, *w)
	}
	// Descending by date; ISO dates compare correctly as strings.
	// SliceStable keeps input order for equal dates.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result
}

// GroupByID reconstructs a single workout for editing. Rows missing an
// id are skipped; if more than one id is present only the first group
// is returned. Unlike the list view, exercise identity here includes
// notes, so the notes text survives a round trip through the editor.
func GroupByID(rows []models.WorkoutRow) (models.Workout, error) {
	groups := make(map[string]*models.Workout)
	var order []string

	for _, row := range rows {
		if row.ID == "" {
			continue
		}
		w, ok := groups[row.ID]
		if !ok {
			w = &models.Workout{ID: row.ID, Date: row.Date, Category: row.Category}
			groups[row.ID] = w
			order = append(order, row.ID)
		}
		ex := findExercise(w, row, true)
		ex.Sets = append(ex.Sets, rowSet(row))
	}

	if len(order) == 0 {
		return models.Workout{}, ErrNotFound
	}
	w := groups[order[0]]
	sortSets(w)
	return *w, nil
}

// Flatten emits one row per set, re-deriving every set number as its
// 1-based position and discarding any prior numbering. The emitted set
// numbers for an exercise with N sets are therefore exactly 1..N.
func Flatten(w models.Workout) []models.WorkoutRow {
	var rows []models.WorkoutRow
	for _, ex := range w.Exercises {
		for i, set := range ex.Sets {
			rows = append(rows, models.WorkoutRow{
				ID:        w.ID,
				Date:      w.Date,
				Category:  w.Category,
				Intensity: ex.Intensity,
				Exercise:  ex.Name,
				SetNumber: strconv.Itoa(i + 1),
				Plan:      set.Plan,
				Actual:    set.Actual,
				Notes:     ex.Notes,
			})
		}
	}
	return rows
}

// findExercise matches an existing exercise by the identity rule for
// the given mode, or appends a new one. First occurrence wins for
// notes and the other non-list fields.
func findExercise(w *models.Workout, row models.WorkoutRow, withNotes bool) *models.Exercise {
	for i := range w.Exercises {
		ex := &w.Exercises[i]
		if ex.Name != row.Exercise || ex.Intensity != row.Intensity {
			continue
		}
		if withNotes && ex.Notes != row.Notes {
			continue
		}
		return ex
	}
	w.Exercises = append(w.Exercises, models.Exercise{
		Name:      row.Exercise,
		Intensity: row.Intensity,
		Notes:     row.Notes,
	})
	return &w.Exercises[len(w.Exercises)-1]
}

func rowSet(row models.WorkoutRow) models.Set {
	return models.Set{
		SetNumber: parseSetNumber(row.SetNumber),
		Plan:      row.Plan,
		Actual:    row.Actual,
	}
}

// parseSetNumber coerces the untyped stored value. Anything
// non-numeric becomes 0 and sorts first; bad data never fails a read.
func parseSetNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func sortSets(w *models.Workout) {
	for i := range w.Exercises {
		sets := w.Exercises[i].Sets
		sort.SliceStable(sets, func(a, b int) bool {
			return sets[a].SetNumber < sets[b].SetNumber
		})
	}
}
