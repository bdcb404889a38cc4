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

// UpsertAnswer stores one logical answer per (user, template). Repeated
// writes of the same value leave stored state unchanged apart from
// updated_at.
func (db *DB) UpsertAnswer(ctx context.Context, userID uuid.UUID, templateID int64, value json.RawMessage) (*types.UserAnswer, error) {
	var answer types.UserAnswer
	err := db.pool.QueryRow(ctx,
		`INSERT INTO user_answers (user_id, template_id, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, template_id) DO UPDATE SET value = $3, updated_at = NOW()
		 RETURNING id, user_id, template_id, value, created_at, updated_at`,
		userID, templateID, value,
	).Scan(&answer.ID, &answer.UserID, &answer.TemplateID, &answer.Value, &answer.CreatedAt, &answer.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert answer for template %d: %w", templateID, err)
	}
	return &answer, nil
}

// GetAnswer retrieves a user's answer for a template. Returns nil when absent.
func (db *DB) GetAnswer(ctx context.Context, userID uuid.UUID, templateID int64) (*types.UserAnswer, error) {
	var answer types.UserAnswer
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, template_id, value, created_at, updated_at
		 FROM user_answers WHERE user_id = $1 AND template_id = $2`,
		userID, templateID,
	).Scan(&answer.ID, &answer.UserID, &answer.TemplateID, &answer.Value, &answer.CreatedAt, &answer.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer for template %d: %w", templateID, err)
	}
	return &answer, nil
}

// ListAnswers retrieves all of a user's stored answers.
func (db *DB) ListAnswers(ctx context.Context, userID uuid.UUID) ([]types.UserAnswer, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, template_id, value, created_at, updated_at
		 FROM user_answers WHERE user_id = $1 ORDER BY template_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	answers := make([]types.UserAnswer, 0)
	for rows.Next() {
		var answer types.UserAnswer
		if err := rows.Scan(&answer.ID, &answer.UserID, &answer.TemplateID, &answer.Value, &answer.CreatedAt, &answer.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answers: %w", err)
	}
	return answers, nil
}

// DeleteAnswer removes a user's answer for a template.
func (db *DB) DeleteAnswer(ctx context.Context, userID uuid.UUID, templateID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM user_answers WHERE user_id = $1 AND template_id = $2`,
		userID, templateID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete answer for template %d: %w", templateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("answer not found: user %s template %d", userID, templateID)
	}
	return nil
}

// DeleteAnswersForUser removes all of a user's stored answers. Called
// from the account-deletion path; answers never outlive their owner.
func (db *DB) DeleteAnswersForUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM user_answers WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete answers for user %s: %w", userID, err)
	}
	return nil
}
