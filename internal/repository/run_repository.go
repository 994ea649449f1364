package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/pace-analyzer/internal/analysis"
	"github.com/jengzang/pace-analyzer/internal/models"
)

// RunRepository handles database operations for analyzed runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create stores a run and sets its ID and CreatedAt
func (r *RunRepository) Create(ctx context.Context, run *models.Run) error {
	if run.Data == nil {
		return fmt.Errorf("failed to create run: missing analysis data")
	}
	data, err := json.Marshal(run.Data)
	if err != nil {
		return fmt.Errorf("failed to encode analysis data: %w", err)
	}

	run.TotalDistance = run.Data.TotalDistance
	run.DurationMinutes = run.Data.DurationMinutes
	run.AvgPace = run.Data.AvgPace
	run.AvgHeartRate = run.Data.AvgHRAll
	run.CreatedAt = time.Now().UTC()

	query := `INSERT INTO runs (user_id, filename, run_date, pace_limit,
		total_distance, duration_minutes, avg_pace, avg_hr, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		run.UserID, run.Filename, run.Date, run.PaceLimit,
		run.TotalDistance, run.DurationMinutes, run.AvgPace, run.AvgHeartRate,
		string(data), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = id
	return nil
}

// GetByID retrieves a run with its analysis data. Runs owned by another user
// are reported as ErrNotFound.
func (r *RunRepository) GetByID(ctx context.Context, id int64, userID string) (*models.Run, error) {
	query := `SELECT id, user_id, filename, run_date, pace_limit,
		total_distance, duration_minutes, avg_pace, avg_hr, data, created_at
		FROM runs WHERE id = ? AND user_id = ?`

	var run models.Run
	var data string
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&run.ID, &run.UserID, &run.Filename, &run.Date, &run.PaceLimit,
		&run.TotalDistance, &run.DurationMinutes, &run.AvgPace, &run.AvgHeartRate,
		&data, &run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var result analysis.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis data for run %d: %w", id, err)
	}
	run.Data = &result
	return &run, nil
}

// ListByUser retrieves a user's runs, newest date first, without analysis data
func (r *RunRepository) ListByUser(ctx context.Context, userID string, filter models.RunFilter) ([]models.Run, int64, error) {
	filter.Normalize()

	conditions := []string{"user_id = ?"}
	args := []interface{}{userID}
	if filter.From != "" {
		conditions = append(conditions, "run_date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "run_date <= ?")
		args = append(args, filter.To)
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	query := `SELECT id, user_id, filename, run_date, pace_limit,
		total_distance, duration_minutes, avg_pace, avg_hr, created_at
		FROM runs` + where + " ORDER BY run_date DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []models.Run{}
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(
			&run.ID, &run.UserID, &run.Filename, &run.Date, &run.PaceLimit,
			&run.TotalDistance, &run.DurationMinutes, &run.AvgPace, &run.AvgHeartRate,
			&run.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, total, nil
}

// Delete removes a run owned by userID
func (r *RunRepository) Delete(ctx context.Context, id int64, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
