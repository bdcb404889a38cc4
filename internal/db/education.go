package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/apply-autofill/internal/types"
)

// ListEducation retrieves a user's education history in entry order.
func (db *DB) ListEducation(ctx context.Context, userID uuid.UUID) ([]types.Education, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, school, degree_type, field, gpa, location, start_date, end_date, ordinal, created_at, updated_at
		 FROM education WHERE user_id = $1 ORDER BY ordinal, created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}
	defer rows.Close()

	entries := make([]types.Education, 0)
	for rows.Next() {
		var entry types.Education
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.School, &entry.DegreeType, &entry.Field,
			&entry.GPA, &entry.Location, &entry.StartDate, &entry.EndDate, &entry.Ordinal,
			&entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate education: %w", err)
	}
	return entries, nil
}

// CreateEducation appends an education entry for a user and returns its id.
func (db *DB) CreateEducation(ctx context.Context, entry *types.Education) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO education (user_id, school, degree_type, field, gpa, location, start_date, end_date, ordinal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			 (SELECT COALESCE(MAX(ordinal), 0) + 1 FROM education WHERE user_id = $1))
		 RETURNING id`,
		entry.UserID, entry.School, entry.DegreeType, entry.Field, entry.GPA, entry.Location,
		entry.StartDate, entry.EndDate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create education: %w", err)
	}
	return id, nil
}

// GetEducation retrieves one education entry by id. Returns nil when absent.
func (db *DB) GetEducation(ctx context.Context, id uuid.UUID) (*types.Education, error) {
	var entry types.Education
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, school, degree_type, field, gpa, location, start_date, end_date, ordinal, created_at, updated_at
		 FROM education WHERE id = $1`,
		id,
	).Scan(&entry.ID, &entry.UserID, &entry.School, &entry.DegreeType, &entry.Field,
		&entry.GPA, &entry.Location, &entry.StartDate, &entry.EndDate, &entry.Ordinal,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get education %s: %w", id, err)
	}
	return &entry, nil
}

// UpdateEducation replaces an education entry's content.
func (db *DB) UpdateEducation(ctx context.Context, entry *types.Education) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE education
		 SET school = $1, degree_type = $2, field = $3, gpa = $4, location = $5, start_date = $6, end_date = $7, updated_at = NOW()
		 WHERE id = $8`,
		entry.School, entry.DegreeType, entry.Field, entry.GPA, entry.Location, entry.StartDate, entry.EndDate, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update education %s: %w", entry.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("education not found: %s", entry.ID)
	}
	return nil
}

// DeleteEducation removes an education entry.
func (db *DB) DeleteEducation(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM education WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete education %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("education not found: %s", id)
	}
	return nil
}
