package profile

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository is a database-backed store for user settings and the weight
// history. Settings are a singleton row.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// SaveSettings writes the user's settings, creating the singleton row on
// first save.
func (r *Repository) SaveSettings(ctx context.Context, s Settings) error {
	query := `
    INSERT INTO user_settings (id, current_weight_lbs, target_weight_lbs, height_inches, age, sex, activity_level, weekly_loss_rate, protein_ratio, carbs_ratio, fat_ratio, updated_at)
    VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(id) DO UPDATE SET
        current_weight_lbs = excluded.current_weight_lbs,
        target_weight_lbs = excluded.target_weight_lbs,
        height_inches = excluded.height_inches,
        age = excluded.age,
        sex = excluded.sex,
        activity_level = excluded.activity_level,
        weekly_loss_rate = excluded.weekly_loss_rate,
        protein_ratio = excluded.protein_ratio,
        carbs_ratio = excluded.carbs_ratio,
        fat_ratio = excluded.fat_ratio,
        updated_at = excluded.updated_at
    `
	_, err := r.db.ExecContext(ctx, query,
		s.CurrentWeightLbs, s.TargetWeightLbs, s.HeightInches, s.Age,
		s.Sex, s.ActivityLevel, s.WeeklyLossRate,
		s.ProteinRatio, s.CarbsRatio, s.FatRatio, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings retrieves the user's settings. Returns nil when nothing has
// been saved yet; callers fall back to defaults in that case.
func (r *Repository) GetSettings(ctx context.Context) (*Settings, error) {
	query := `
    SELECT current_weight_lbs, target_weight_lbs, height_inches, age, sex, activity_level, weekly_loss_rate, protein_ratio, carbs_ratio, fat_ratio
    FROM user_settings
    WHERE id = 1
    `
	var s Settings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.CurrentWeightLbs, &s.TargetWeightLbs, &s.HeightInches, &s.Age,
		&s.Sex, &s.ActivityLevel, &s.WeeklyLossRate,
		&s.ProteinRatio, &s.CarbsRatio, &s.FatRatio)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

// SetCurrentWeight updates only the current weight, creating the settings row
// when it does not exist so a weight log never gets lost.
func (r *Repository) SetCurrentWeight(ctx context.Context, weightLbs float64) error {
	query := `
    INSERT INTO user_settings (id, current_weight_lbs, updated_at)
    VALUES (1, ?, ?)
    ON CONFLICT(id) DO UPDATE SET
        current_weight_lbs = excluded.current_weight_lbs,
        updated_at = excluded.updated_at
    `
	_, err := r.db.ExecContext(ctx, query, weightLbs, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update current weight: %w", err)
	}
	return nil
}

// UpsertWeight records a weight measurement for a date, replacing any earlier
// measurement on the same date.
func (r *Repository) UpsertWeight(ctx context.Context, sample WeightSample) error {
	query := `
    INSERT INTO weight_samples (date, weight_lbs, created_at)
    VALUES (?, ?, ?)
    ON CONFLICT(date) DO UPDATE SET
        weight_lbs = excluded.weight_lbs
    `
	_, err := r.db.ExecContext(ctx, query, sample.Date, sample.WeightLbs, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record weight: %w", err)
	}
	return nil
}

// ListWeights returns the full weight history in chronological order.
func (r *Repository) ListWeights(ctx context.Context) ([]WeightSample, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT date, weight_lbs FROM weight_samples ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to query weight history: %w", err)
	}
	defer rows.Close()

	var samples []WeightSample
	for rows.Next() {
		var s WeightSample
		if err := rows.Scan(&s.Date, &s.WeightLbs); err != nil {
			return nil, fmt.Errorf("failed to scan weight sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
