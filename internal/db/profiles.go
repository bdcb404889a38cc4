package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/apply-autofill/internal/types"
)

// GetProfile retrieves the profile for a user. Returns nil when absent.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	var profile types.Profile
	var personalInfo, skills []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, personal_info, skills, completion_percentage, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&profile.ID, &profile.UserID, &personalInfo, &skills, &profile.CompletionPercentage, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}

	if len(personalInfo) > 0 && string(personalInfo) != "null" {
		profile.PersonalInfo = &types.PersonalInfo{}
		if err := json.Unmarshal(personalInfo, profile.PersonalInfo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal personal info: %w", err)
		}
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &profile.Skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	return &profile, nil
}

// UpsertProfile creates or replaces a user's profile content. The store
// enforces one profile per user. Completion is persisted separately via
// UpdateProfileCompletion so it always reflects a fresh recompute.
func (db *DB) UpsertProfile(ctx context.Context, userID uuid.UUID, personalInfo *types.PersonalInfo, skills []string) (*types.Profile, error) {
	infoJSON, err := json.Marshal(personalInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal personal info: %w", err)
	}
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, personal_info, skills)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET personal_info = $2, skills = $3, updated_at = NOW()`,
		userID, infoJSON, skillsJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile for user %s: %w", userID, err)
	}

	return db.GetProfile(ctx, userID)
}

// UpdateProfileCompletion persists a freshly recomputed completion
// percentage. The stored value is never hand-edited.
func (db *DB) UpdateProfileCompletion(ctx context.Context, userID uuid.UUID, percentage int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE profiles SET completion_percentage = $1, updated_at = NOW() WHERE user_id = $2`,
		percentage, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update completion for user %s: %w", userID, err)
	}
	return nil
}

// DeleteUserData removes the profile and everything owned by the user:
// work experience, education, and stored answers.
func (db *DB) DeleteUserData(ctx context.Context, userID uuid.UUID) error {
	tables := []string{"user_answers", "work_experiences", "education", "profiles"}
	for _, table := range tables {
		if _, err := db.pool.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to delete %s for user %s: %w", table, userID, err)
		}
	}
	return nil
}
