package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// MostFrequentCategory returns the category with the most logged
// workout dates. Ties break alphabetically; an empty store returns "".
func (db *DB) MostFrequentCategory(ctx context.Context) (string, error) {
	var category string
	err := db.Pool.QueryRow(ctx,
		`SELECT category
		 FROM workout_rows
		 WHERE category <> ''
		 GROUP BY category
		 ORDER BY COUNT(DISTINCT date) DESC, category ASC
		 LIMIT 1`,
	).Scan(&category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// An empty store is not a stats error.
			return "", nil
		}
		return "", fmt.Errorf("querying most frequent category: %w", err)
	}
	return category, nil
}
