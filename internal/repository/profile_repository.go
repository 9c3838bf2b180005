// internal/repository/profile_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sik-configurator/internal/database"
	"sik-configurator/internal/model"
	"sik-configurator/internal/utils"
)

// profileRepository implements ProfileRepository on PostgreSQL
type profileRepository struct {
	db     *database.DB
	logger *utils.ServiceLogger
}

// NewProfileRepository creates a PostgreSQL profile repository
func NewProfileRepository(db *database.DB, logger *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:     db,
		logger: utils.NewServiceLogger(logger, "profile-repository"),
	}
}

// Create creates a new profile
func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO radio_profiles (id, name, parameters, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	args := []interface{}{profile.ID, profile.Name, profile.Parameters, profile.CreatedAt, profile.UpdatedAt}
	startTime := time.Now()
	_, err := r.db.ExecContext(ctx, query, args...)
	r.logger.LogDatabaseQuery("insert radio_profiles", []interface{}{profile.ID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by its UUID
func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, name, parameters, created_at, updated_at
		FROM radio_profiles WHERE id = $1
	`

	profile := &model.Profile{}
	startTime := time.Now()
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.Name, &profile.Parameters,
		&profile.CreatedAt, &profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		r.logger.LogDatabaseQuery("select radio_profiles", []interface{}{id}, time.Since(startTime), err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// Update updates an existing profile
func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE radio_profiles SET name = $2, parameters = $3, updated_at = $4
		WHERE id = $1
	`

	startTime := time.Now()
	result, err := r.db.ExecContext(ctx, query, profile.ID, profile.Name, profile.Parameters, profile.UpdatedAt)
	r.logger.LogDatabaseQuery("update radio_profiles", []interface{}{profile.ID}, time.Since(startTime), err)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return checkAffected(result, profile.ID)
}

// Delete deletes a profile
func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	startTime := time.Now()
	result, err := r.db.ExecContext(ctx, `DELETE FROM radio_profiles WHERE id = $1`, id)
	r.logger.LogDatabaseQuery("delete radio_profiles", []interface{}{id}, time.Since(startTime), err)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return checkAffected(result, id)
}

// List returns every profile, most recently updated first
func (r *profileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	query := `
		SELECT id, name, parameters, created_at, updated_at
		FROM radio_profiles ORDER BY updated_at DESC, name ASC
	`

	startTime := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	r.logger.LogDatabaseQuery("list radio_profiles", nil, time.Since(startTime), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*model.Profile{}
	for rows.Next() {
		profile := &model.Profile{}
		if err := rows.Scan(
			&profile.ID, &profile.Name, &profile.Parameters,
			&profile.CreatedAt, &profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

func checkAffected(result sql.Result, id uuid.UUID) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return nil
}
