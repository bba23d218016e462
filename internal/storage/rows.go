package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
)

// ErrEmptyStore is returned by ReplaceWorkout when there is nothing to
// update against.
var ErrEmptyStore = errors.New("no workout rows stored")

const rowColumns = `workout_id, date, category, intensity, exercise, set_number, plan, actual, notes`

// InsertWorkoutRows batch-inserts flat workout rows. Returns count inserted.
func (db *DB) InsertWorkoutRows(ctx context.Context, rows []models.WorkoutRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO workout_rows (` + rowColumns + `) VALUES `
	args := make([]any, 0, len(rows)*9)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, r.ID, r.Date, r.Category, r.Intensity, r.Exercise,
			r.SetNumber, r.Plan, r.Actual, r.Notes)
	}

	query += strings.Join(valueStrings, ",")

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting workout rows: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListPage retrieves one page of rows, newest date first. Pagination
// applies to date-groups rather than rows so one workout never
// straddles a page boundary.
func (db *DB) ListPage(ctx context.Context, page, limit int) ([]models.WorkoutRow, int, error) {
	var total int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT date) FROM workout_rows`,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting workout dates: %w", err)
	}

	offset := (page - 1) * limit
	rows, err := db.Pool.Query(ctx,
		`SELECT `+rowColumns+`
		 FROM workout_rows
		 WHERE date IN (
			SELECT DISTINCT date FROM workout_rows
			ORDER BY date DESC
			LIMIT $1 OFFSET $2
		 )
		 ORDER BY date DESC, row_id ASC`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying workout rows: %w", err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// QueryRowsByID retrieves all rows for one workout id in insertion order.
func (db *DB) QueryRowsByID(ctx context.Context, id string) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+rowColumns+`
		 FROM workout_rows
		 WHERE workout_id = $1
		 ORDER BY row_id ASC`,
		id)
	if err != nil {
		return nil, fmt.Errorf("querying workout rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// ReplaceWorkout transactionally removes the stored rows for the given
// workout id and inserts the replacement rows, so a failed update
// never leaves partial state.
func (db *DB) ReplaceWorkout(ctx context.Context, id string, rows []models.WorkoutRow) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM workout_rows)`,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking store: %w", err)
	}
	if !exists {
		return ErrEmptyStore
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM workout_rows WHERE workout_id = $1`, id,
	); err != nil {
		return fmt.Errorf("deleting old workout rows: %w", err)
	}

	if len(rows) > 0 {
		query := `INSERT INTO workout_rows (` + rowColumns + `) VALUES `
		args := make([]any, 0, len(rows)*9)
		valueStrings := make([]string, 0, len(rows))
		for i, r := range rows {
			base := i * 9
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
			))
			args = append(args, r.ID, r.Date, r.Category, r.Intensity, r.Exercise,
				r.SetNumber, r.Plan, r.Actual, r.Notes)
		}
		query += strings.Join(valueStrings, ",")
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting replacement rows: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// DeleteByDate removes every row recorded for the given date. Returns
// count deleted.
func (db *DB) DeleteByDate(ctx context.Context, date string) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_rows WHERE date = $1`, date)
	if err != nil {
		return 0, fmt.Errorf("deleting workout rows by date: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteExercise removes the rows matching (date, exercise name).
// Returns count deleted.
func (db *DB) DeleteExercise(ctx context.Context, date, exerciseName string) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_rows WHERE date = $1 AND exercise = $2`,
		date, exerciseName)
	if err != nil {
		return 0, fmt.Errorf("deleting exercise rows: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.WorkoutRow, error) {
	var result []models.WorkoutRow
	for rows.Next() {
		var r models.WorkoutRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Category, &r.Intensity, &r.Exercise,
			&r.SetNumber, &r.Plan, &r.Actual, &r.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
