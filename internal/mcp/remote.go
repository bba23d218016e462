package mcp

import (
	"context"

	"github.com/wldnjs95/workout-tracker-webapp/internal/client"
	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
)

// Remote implements DataSource by calling a workout tracker server's
// REST API. Used when the MCP binary runs locally (stdio) but the data
// lives on a remote server.
type Remote struct {
	api *client.Client
}

// Compile-time check: Remote satisfies DataSource.
var _ DataSource = (*Remote)(nil)

// NewRemote creates a Remote targeting the given base URL.
func NewRemote(baseURL string) *Remote {
	return &Remote{api: client.New(baseURL)}
}

func (r *Remote) ListPage(ctx context.Context, page, limit int) ([]models.WorkoutRow, int, error) {
	list, err := r.api.ListWorkouts(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return list.Data, list.Total, nil
}

func (r *Remote) QueryRowsByID(ctx context.Context, id string) ([]models.WorkoutRow, error) {
	return r.api.GetWorkoutRows(ctx, id)
}

func (r *Remote) MostFrequentCategory(ctx context.Context) (string, error) {
	stats, err := r.api.GetStats(ctx)
	if err != nil {
		return "", err
	}
	return stats.MostFrequentCategory, nil
}
