package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jengzang/pace-analyzer/internal/models"
)

// ProfileRepository handles database operations for runner profiles
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get retrieves the saved profile of a user, or ErrNotFound
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT user_id, age, resting_hr, weight_kg, sex, updated_at
		FROM profiles WHERE user_id = ?`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Age, &p.RestingHR, &p.WeightKg, &p.Sex, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// Upsert inserts or replaces the profile of p.UserID
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	p.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO profiles (user_id, age, resting_hr, weight_kg, sex, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			age = excluded.age,
			resting_hr = excluded.resting_hr,
			weight_kg = excluded.weight_kg,
			sex = excluded.sex,
			updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, p.UserID, p.Age, p.RestingHR, p.WeightKg, p.Sex, p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
