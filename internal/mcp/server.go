// Package mcp exposes the workout log to MCP clients: read-only tools
// and resources over the same rows the REST API serves. The data source
// is either the local database or a remote server reached over its
// REST API.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
	"github.com/wldnjs95/workout-tracker-webapp/internal/storage"
)

// DataSource abstracts the row store for MCP tools. *storage.DB (local)
// and Remote (REST API) both satisfy it.
type DataSource interface {
	ListPage(ctx context.Context, page, limit int) ([]models.WorkoutRow, int, error)
	QueryRowsByID(ctx context.Context, id string) ([]models.WorkoutRow, error)
	MostFrequentCategory(ctx context.Context) (string, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Workout Tracker", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Workout logging server. Query logged workout sessions, their exercises and sets (planned vs actual), and category statistics."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetCategoryStats, Handler: h.getCategoryStats},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resRecentWorkouts = mcp.NewResource(
	"workouts://recent",
	"Recent Workouts",
	mcp.WithResourceDescription("The most recent workout sessions, grouped by date with nested exercises and sets"),
	mcp.WithMIMEType("application/json"),
)
