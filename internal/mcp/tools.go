package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wldnjs95/workout-tracker-webapp/internal/workout"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List logged workout sessions, most recent date first. Each workout is grouped by date and contains its exercises with planned/actual sets."),
	mcp.WithNumber("page", mcp.Description("Page number, 1-based. Defaults to 1.")),
	mcp.WithNumber("limit", mcp.Description("Workouts per page (1-100). Defaults to 10.")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one workout session by id, with nested exercises and sets in set-number order."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id (e.g. wk-1704067200000)")),
)

var toolGetCategoryStats = mcp.NewTool("get_category_stats",
	mcp.WithDescription("Aggregate statistics over the workout log: the most frequently trained category."),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := req.GetInt("page", 1)
	limit := req.GetInt("limit", 10)

	rows, total, err := h.ds.ListPage(ctx, page, limit)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workouts": workout.GroupByDate(rows),
		"total":    total,
		"page":     page,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	rows, err := h.ds.QueryRowsByID(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout", "id", id, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	wk, err := workout.GroupByID(rows)
	if err != nil {
		return mcp.NewToolResultError("workout not found: " + id), nil
	}

	result, err := mcp.NewToolResultJSON(wk)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCategoryStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := h.ds.MostFrequentCategory(ctx)
	if err != nil {
		h.log.Error("mcp get_category_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]string{
		"most_frequent_category": category,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resource handlers ---

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rows, _, err := h.ds.ListPage(ctx, 1, 10)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(workout.GroupByDate(rows))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
