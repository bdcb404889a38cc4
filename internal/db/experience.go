package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/apply-autofill/internal/types"
)

// ListWorkExperience retrieves a user's work experience in entry order.
func (db *DB) ListWorkExperience(ctx context.Context, userID uuid.UUID) ([]types.WorkExperience, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, title, location, start_date, end_date, current, description, ordinal, created_at, updated_at
		 FROM work_experiences WHERE user_id = $1 ORDER BY ordinal, created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list work experience: %w", err)
	}
	defer rows.Close()

	entries := make([]types.WorkExperience, 0)
	for rows.Next() {
		var entry types.WorkExperience
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Company, &entry.Title, &entry.Location,
			&entry.StartDate, &entry.EndDate, &entry.Current, &entry.Description, &entry.Ordinal,
			&entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan work experience: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work experience: %w", err)
	}
	return entries, nil
}

// CreateWorkExperience appends a work experience entry for a user and
// returns its id. Ordinal continues the user's entry order.
func (db *DB) CreateWorkExperience(ctx context.Context, entry *types.WorkExperience) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO work_experiences (user_id, company, title, location, start_date, end_date, current, description, ordinal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			 (SELECT COALESCE(MAX(ordinal), 0) + 1 FROM work_experiences WHERE user_id = $1))
		 RETURNING id`,
		entry.UserID, entry.Company, entry.Title, entry.Location, entry.StartDate, entry.EndDate,
		entry.Current, entry.Description,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create work experience: %w", err)
	}
	return id, nil
}

// GetWorkExperience retrieves one work experience entry by id. Returns nil when absent.
func (db *DB) GetWorkExperience(ctx context.Context, id uuid.UUID) (*types.WorkExperience, error) {
	var entry types.WorkExperience
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, company, title, location, start_date, end_date, current, description, ordinal, created_at, updated_at
		 FROM work_experiences WHERE id = $1`,
		id,
	).Scan(&entry.ID, &entry.UserID, &entry.Company, &entry.Title, &entry.Location,
		&entry.StartDate, &entry.EndDate, &entry.Current, &entry.Description, &entry.Ordinal,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work experience %s: %w", id, err)
	}
	return &entry, nil
}

// UpdateWorkExperience replaces a work experience entry's content.
func (db *DB) UpdateWorkExperience(ctx context.Context, entry *types.WorkExperience) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE work_experiences
		 SET company = $1, title = $2, location = $3, start_date = $4, end_date = $5, current = $6, description = $7, updated_at = NOW()
		 WHERE id = $8`,
		entry.Company, entry.Title, entry.Location, entry.StartDate, entry.EndDate, entry.Current, entry.Description, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work experience %s: %w", entry.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("work experience not found: %s", entry.ID)
	}
	return nil
}

// DeleteWorkExperience removes a work experience entry.
func (db *DB) DeleteWorkExperience(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM work_experiences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work experience %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("work experience not found: %s", id)
	}
	return nil
}
