// Package client is the HTTP client for the workout tracker REST API.
// It is the transport used by the form model and the CLI; server-side
// code never imports it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wldnjs95/workout-tracker-webapp/internal/models"
)

// Client talks to a workout tracker server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client targeting the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListWorkouts fetches one page of flat workout rows.
func (c *Client) ListWorkouts(ctx context.Context, page, limit int) (*models.WorkoutList, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var list models.WorkoutList
	if err := c.do(ctx, http.MethodGet, "/api/workouts", params, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetStats fetches aggregate statistics.
func (c *Client) GetStats(ctx context.Context) (*models.CategoryStats, error) {
	var stats models.CategoryStats
	if err := c.do(ctx, http.MethodGet, "/api/workouts/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetWorkoutRows fetches the flat rows for one workout id.
func (c *Client) GetWorkoutRows(ctx context.Context, id string) ([]models.WorkoutRow, error) {
	var resp struct {
		Data []models.WorkoutRow `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/workouts/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateWorkout submits a new nested workout.
func (c *Client) CreateWorkout(ctx context.Context, w models.Workout) error {
	return c.do(ctx, http.MethodPost, "/api/workouts", nil, w, nil)
}

// UpdateWorkout replaces the stored rows for the workout's id.
func (c *Client) UpdateWorkout(ctx context.Context, w models.Workout) error {
	return c.do(ctx, http.MethodPut, "/api/workouts/"+url.PathEscape(w.ID), nil, w, nil)
}

// DeleteByDate deletes every row recorded for the given date.
func (c *Client) DeleteByDate(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/api/workouts/date/"+url.PathEscape(date), nil, nil, nil)
}

// DeleteExercise deletes the rows matching (date, exerciseName).
func (c *Client) DeleteExercise(ctx context.Context, date, exerciseName string) error {
	req := models.DeleteExerciseRequest{Date: date, ExerciseName: exerciseName}
	return c.do(ctx, http.MethodPost, "/api/workouts/delete-exercise", nil, req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}

// apiError surfaces the server's detail message verbatim when present,
// otherwise a generic status message.
func apiError(status int, body []byte) error {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return errors.New(e.Detail)
	}
	return fmt.Errorf("HTTP error, status %d", status)
}
