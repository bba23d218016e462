// Package form holds the editable nested representation of one workout
// session and the flattening-on-submit logic. The model is an explicit
// mutable tree addressed by indices; there is no hidden field
// registry, and every mutation goes through a named operation.
package form

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
)

// State is the lifecycle of one form model instance.
type State int

const (
	// StateEmpty is a freshly constructed model awaiting Init or Load.
	StateEmpty State = iota
	// StatePopulated is an editable model.
	StatePopulated
	// StateSubmitting means a submit call is in flight.
	StateSubmitting
	// StateSubmitted is terminal: the workout was saved and the UI has
	// navigated away.
	StateSubmitted
)

// CategorySentinel is the select value that switches the model into
// "awaiting new category text" mode.
const CategorySentinel = "add-new"

// DefaultCategories are always offered, before any custom ones.
var DefaultCategories = []string{"Push", "Pull", "Legs", "Cardio", "Full Body"}

var (
	// ErrSubmitInFlight rejects a second submit while one is pending.
	ErrSubmitInFlight = errors.New("submit already in flight")
	// ErrNotPopulated rejects operations on an empty model.
	ErrNotPopulated = errors.New("form not populated")
)

// Submitter performs the create-or-update network call.
// *client.Client satisfies it.
type Submitter interface {
	CreateWorkout(ctx context.Context, w models.Workout) error
	UpdateWorkout(ctx context.Context, w models.Workout) error
}

// Model is one editable workout session.
type Model struct {
	state   State
	editing bool
	workout models.Workout

	customCategories []string
	awaitingCategory bool

	drag *setDrag

	lastErr error
}

// setDrag is the transient state of one drag-to-resize gesture. It
// snapshots the original set list so reversing the displacement
// restores truncated sets with their content intact.
type setDrag struct {
	exercise int
	original []models.Set
}

// New returns an empty model. Call Init for a fresh workout or Load
// once externally fetched data arrives.
func New() *Model {
	return &Model{state: StateEmpty}
}

// Init populates the model with new-workout defaults: a generated id,
// today's date, no category, and one empty exercise with one empty set.
func (m *Model) Init(now time.Time) {
	m.workout = models.Workout{
		ID:        models.NewWorkoutID(now),
		Date:      now.Format("2006-01-02"),
		Exercises: []models.Exercise{emptyExercise()},
	}
	m.editing = false
	m.state = StatePopulated
	m.lastErr = nil
}

// Load replaces the model's fields wholesale with an externally
// supplied workout, switching the model into edit mode. Loading is
// idempotent and may happen after the model was initialized empty.
func (m *Model) Load(w models.Workout) {
	m.workout = w
	m.editing = true
	m.state = StatePopulated
	m.lastErr = nil
}

// State reports the model's lifecycle state.
func (m *Model) State() State { return m.state }

// Editing reports whether Submit will update (PUT) rather than create.
func (m *Model) Editing() bool { return m.editing }

// Err returns the error surfaced by the last failed submit, if any.
func (m *Model) Err() error { return m.lastErr }

// Workout returns the current nested value.
func (m *Model) Workout() models.Workout { return m.workout }

// SetDate sets the workout date (YYYY-MM-DD).
func (m *Model) SetDate(date string) { m.workout.Date = date }

// AddExercise appends one exercise with one empty set.
func (m *Model) AddExercise() {
	m.workout.Exercises = append(m.workout.Exercises, emptyExercise())
}

// RemoveExercise removes the exercise at index.
func (m *Model) RemoveExercise(index int) error {
	if index < 0 || index >= len(m.workout.Exercises) {
		return fmt.Errorf("exercise index %d out of range", index)
	}
	m.workout.Exercises = append(m.workout.Exercises[:index], m.workout.Exercises[index+1:]...)
	return nil
}

// SetExerciseField updates the name, intensity, or notes of one
// exercise through the setter func.
func (m *Model) SetExerciseField(index int, set func(*models.Exercise)) error {
	if index < 0 || index >= len(m.workout.Exercises) {
		return fmt.Errorf("exercise index %d out of range", index)
	}
	set(&m.workout.Exercises[index])
	return nil
}

// AddSet appends one empty set to the exercise at exerciseIndex.
func (m *Model) AddSet(exerciseIndex int) error {
	ex, err := m.exercise(exerciseIndex)
	if err != nil {
		return err
	}
	ex.Sets = append(ex.Sets, models.Set{})
	return nil
}

// RemoveSet removes one set. Removing the last remaining set is
// allowed; the list may be empty while editing.
func (m *Model) RemoveSet(exerciseIndex, setIndex int) error {
	ex, err := m.exercise(exerciseIndex)
	if err != nil {
		return err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return fmt.Errorf("set index %d out of range", setIndex)
	}
	ex.Sets = append(ex.Sets[:setIndex], ex.Sets[setIndex+1:]...)
	return nil
}

// SetSetField updates the plan or actual text of one set.
func (m *Model) SetSetField(exerciseIndex, setIndex int, set func(*models.Set)) error {
	ex, err := m.exercise(exerciseIndex)
	if err != nil {
		return err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return fmt.Errorf("set index %d out of range", setIndex)
	}
	set(&ex.Sets[setIndex])
	return nil
}

// ReorderSets moves one set from fromIndex to toIndex within its
// exercise, preserving all other relative positions. Since numbering
// is positional, this changes the set numbers emitted at submit time.
func (m *Model) ReorderSets(exerciseIndex, fromIndex, toIndex int) error {
	ex, err := m.exercise(exerciseIndex)
	if err != nil {
		return err
	}
	n := len(ex.Sets)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return fmt.Errorf("reorder indices (%d, %d) out of range", fromIndex, toIndex)
	}
	moved := ex.Sets[fromIndex]
	rest := append(ex.Sets[:fromIndex:fromIndex], ex.Sets[fromIndex+1:]...)
	ex.Sets = append(rest[:toIndex:toIndex], append([]models.Set{moved}, rest[toIndex:]...)...)
	return nil
}

// Drag-to-resize tuning: one set per dragUnitWidth pixels of
// displacement, with a dead zone before the first step registers.
const (
	dragUnitWidth = 60.0
	dragDeadZone  = 20.0
)

// BeginSetDrag starts a resize gesture on one exercise, snapshotting
// its current set list.
func (m *Model) BeginSetDrag(exerciseIndex int) error {
	ex, err := m.exercise(exerciseIndex)
	if err != nil {
		return err
	}
	snapshot := make([]models.Set, len(ex.Sets))
	copy(snapshot, ex.Sets)
	m.drag = &setDrag{exercise: exerciseIndex, original: snapshot}
	return nil
}

// DragTo resizes the exercise's set list for the given cumulative
// pointer displacement. The target count is
// max(1, original + round(displacement/unit)) once past the dead zone.
// Rebuilding from the gesture snapshot makes the operation idempotent
// per displacement and fully reversible while the gesture is active.
func (m *Model) DragTo(displacement float64) error {
	if m.drag == nil {
		return errors.New("no set drag in progress")
	}
	delta := 0
	if math.Abs(displacement) >= dragDeadZone {
		delta = int(math.Round(displacement / dragUnitWidth))
	}
	target := len(m.drag.original) + delta
	if target < 1 {
		target = 1
	}

	ex, err := m.exercise(m.drag.exercise)
	if err != nil {
		return err
	}
	if target <= len(m.drag.original) {
		ex.Sets = make([]models.Set, target)
		copy(ex.Sets, m.drag.original[:target])
		return nil
	}
	ex.Sets = make([]models.Set, 0, target)
	ex.Sets = append(ex.Sets, m.drag.original...)
	for len(ex.Sets) < target {
		ex.Sets = append(ex.Sets, models.Set{})
	}
	return nil
}

// EndSetDrag finishes the gesture. Cleanup is unconditional so no
// snapshot leaks into a later drag.
func (m *Model) EndSetDrag() {
	m.drag = nil
}

// Categories lists the selectable categories: defaults first, then the
// session's custom ones in the order they were added.
func (m *Model) Categories() []string {
	out := make([]string, 0, len(DefaultCategories)+len(m.customCategories))
	out = append(out, DefaultCategories...)
	out = append(out, m.customCategories...)
	return out
}

// AwaitingCategory reports whether the model is waiting for new
// category text.
func (m *Model) AwaitingCategory() bool { return m.awaitingCategory }

// SelectCategory selects a category, or enters the transient "awaiting
// new category text" mode when given the sentinel value.
func (m *Model) SelectCategory(value string) {
	if value == CategorySentinel {
		m.awaitingCategory = true
		return
	}
	m.workout.Category = value
}

// CommitNewCategory commits custom category text. Blank text is
// ignored; text matching an existing default or custom category
// selects the existing entry instead of duplicating it.
func (m *Model) CommitNewCategory(text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		return
	}
	for _, c := range m.Categories() {
		if c == name {
			m.workout.Category = c
			m.awaitingCategory = false
			return
		}
	}
	m.customCategories = append(m.customCategories, name)
	m.workout.Category = name
	m.awaitingCategory = false
}

// AddCustomCategories seeds the session's custom category set, e.g.
// from the draft store. Duplicates are dropped.
func (m *Model) AddCustomCategories(names []string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		exists := false
		for _, c := range m.Categories() {
			if c == name {
				exists = true
				break
			}
		}
		if !exists {
			m.customCategories = append(m.customCategories, name)
		}
	}
}

// CustomCategories returns the session's custom categories.
func (m *Model) CustomCategories() []string {
	out := make([]string, len(m.customCategories))
	copy(out, m.customCategories)
	return out
}

// Submit re-derives every set number as its 1-based position, then
// performs the create-or-update call. On failure the form state is
// preserved unchanged and the error is recorded for the UI; on success
// the model is terminal.
func (m *Model) Submit(ctx context.Context, s Submitter) error {
	switch m.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateEmpty, StateSubmitted:
		return ErrNotPopulated
	}

	m.state = StateSubmitting
	payload := m.numbered()

	var err error
	if m.editing {
		err = s.UpdateWorkout(ctx, payload)
	} else {
		err = s.CreateWorkout(ctx, payload)
	}
	if err != nil {
		m.state = StatePopulated
		m.lastErr = err
		return err
	}
	m.state = StateSubmitted
	m.lastErr = nil
	return nil
}

// numbered returns a copy of the workout with positional set numbers,
// discarding any prior numbering.
func (m *Model) numbered() models.Workout {
	w := m.workout
	w.Exercises = make([]models.Exercise, len(m.workout.Exercises))
	for i, ex := range m.workout.Exercises {
		sets := make([]models.Set, len(ex.Sets))
		for j, set := range ex.Sets {
			set.SetNumber = j + 1
			sets[j] = set
		}
		ex.Sets = sets
		w.Exercises[i] = ex
	}
	return w
}

func (m *Model) exercise(index int) (*models.Exercise, error) {
	if index < 0 || index >= len(m.workout.Exercises) {
		return nil, fmt.Errorf("exercise index %d out of range", index)
	}
	return &m.workout.Exercises[index], nil
}

func emptyExercise() models.Exercise {
	return models.Exercise{Sets: []models.Set{{}}}
}
