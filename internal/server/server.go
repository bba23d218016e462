package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
	"github.com/wldnjs95/workout-tracker-webapp/internal/storage"
)

// Store abstracts the row repository for HTTP handlers. *storage.DB
// satisfies it; tests use a fake.
type Store interface {
	InsertWorkoutRows(ctx context.Context, rows []models.WorkoutRow) (int64, error)
	ListPage(ctx context.Context, page, limit int) ([]models.WorkoutRow, int, error)
	QueryRowsByID(ctx context.Context, id string) ([]models.WorkoutRow, error)
	ReplaceWorkout(ctx context.Context, id string, rows []models.WorkoutRow) error
	DeleteByDate(ctx context.Context, date string) (int64, error)
	DeleteExercise(ctx context.Context, date, exerciseName string) (int64, error)
	MostFrequentCategory(ctx context.Context) (string, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/", s.handleRoot)

	s.router.Route("/api/workouts", func(r chi.Router) {
		r.Get("/", s.handleListWorkouts)
		r.Post("/", s.handleCreateWorkout)
		r.Get("/stats", s.handleStats)
		r.Post("/delete-exercise", s.handleDeleteExercise)
		r.Delete("/date/{date}", s.handleDeleteByDate)
		r.Get("/{id}", s.handleGetWorkout)
		r.Put("/{id}", s.handleUpdateWorkout)
	})
}
