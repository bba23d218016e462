package form

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
)

// DraftStore persists in-progress workouts and the custom-category set
// in a local SQLite file, so a half-filled form survives across CLI
// runs.
type DraftStore struct {
	db *sql.DB
}

// Draft is one saved in-progress workout.
type Draft struct {
	ID      string
	Editing bool
	Workout models.Workout
	SavedAt time.Time
}

// OpenDraftStore opens (or creates) the draft database at dir/drafts.db.
func OpenDraftStore(dir string) (*DraftStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "drafts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening draft db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS drafts (
		id       TEXT PRIMARY KEY,
		editing  INTEGER NOT NULL,
		workout  TEXT NOT NULL,
		saved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating drafts table: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS custom_categories (
		name     TEXT PRIMARY KEY,
		added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating categories table: %w", err)
	}

	return &DraftStore{db: db}, nil
}

// SaveDraft stores the model's current workout. An empty draftID
// allocates a new one; the id is returned either way.
func (s *DraftStore) SaveDraft(draftID string, m *Model) (string, error) {
	if draftID == "" {
		draftID = uuid.NewString()
	}

	data, err := json.Marshal(m.Workout())
	if err != nil {
		return "", fmt.Errorf("marshaling draft: %w", err)
	}

	editing := 0
	if m.Editing() {
		editing = 1
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO drafts (id, editing, workout) VALUES (?, ?, ?)`,
		draftID, editing, string(data),
	)
	if err != nil {
		return "", fmt.Errorf("saving draft: %w", err)
	}
	return draftID, nil
}

// LoadDraft restores a saved draft into the model.
func (s *DraftStore) LoadDraft(draftID string, m *Model) error {
	var (
		editing int
		data    string
	)
	err := s.db.QueryRow(
		`SELECT editing, workout FROM drafts WHERE id = ?`, draftID,
	).Scan(&editing, &data)
	if err != nil {
		return fmt.Errorf("loading draft %s: %w", draftID, err)
	}

	var w models.Workout
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return fmt.Errorf("decoding draft %s: %w", draftID, err)
	}

	m.Load(w)
	if editing == 0 {
		m.editing = false
	}
	return nil
}

// ListDrafts returns all saved drafts, newest first.
func (s *DraftStore) ListDrafts() ([]Draft, error) {
	rows, err := s.db.Query(
		`SELECT id, editing, workout, saved_at FROM drafts ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		var (
			d       Draft
			editing int
			data    string
		)
		if err := rows.Scan(&d.ID, &editing, &data, &d.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning draft: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &d.Workout); err != nil {
			return nil, fmt.Errorf("decoding draft %s: %w", d.ID, err)
		}
		d.Editing = editing != 0
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// DeleteDraft removes a draft, typically after a successful submit.
func (s *DraftStore) DeleteDraft(draftID string) error {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE id = ?`, draftID)
	return err
}

// SaveCategories persists the session's custom categories.
func (s *DraftStore) SaveCategories(names []string) error {
	for _, name := range names {
		if _, err := s.db.Exec(
			`INSERT OR REPLACE INTO custom_categories (name) VALUES (?)`, name,
		); err != nil {
			return fmt.Errorf("saving category %q: %w", name, err)
		}
	}
	return nil
}

// LoadCategories returns all persisted custom categories.
func (s *DraftStore) LoadCategories() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM custom_categories ORDER BY added_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the draft database.
func (s *DraftStore) Close() error {
	return s.db.Close()
}
