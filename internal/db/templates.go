package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/apply-autofill/internal/types"
)

// SeedTemplates inserts the given templates, skipping ids that already
// exist. Re-running the seed never duplicates or rewrites templates.
func (db *DB) SeedTemplates(ctx context.Context, templates []types.QuestionTemplate) (int, error) {
	inserted := 0
	for _, tmpl := range templates {
		options, err := json.Marshal(tmpl.Options)
		if err != nil {
			return inserted, fmt.Errorf("failed to marshal options for template %d: %w", tmpl.ID, err)
		}
		aliases, err := json.Marshal(tmpl.Aliases)
		if err != nil {
			return inserted, fmt.Errorf("failed to marshal aliases for template %d: %w", tmpl.ID, err)
		}

		tag, err := db.pool.Exec(ctx,
			`INSERT INTO question_templates (id, category, question, question_type, options, aliases, description, default_value)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO NOTHING`,
			tmpl.ID, tmpl.Category, tmpl.Question, tmpl.QuestionType, options, aliases, tmpl.Description, tmpl.DefaultValue,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed template %d: %w", tmpl.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// GetTemplate retrieves a template by id. Returns nil when absent.
func (db *DB) GetTemplate(ctx context.Context, id int64) (*types.QuestionTemplate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, category, question, question_type, options, aliases, description, default_value, created_at
		 FROM question_templates WHERE id = $1`,
		id,
	)

	tmpl, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template %d: %w", id, err)
	}
	return tmpl, nil
}

// ListTemplates retrieves all templates ordered by id.
func (db *DB) ListTemplates(ctx context.Context) ([]types.QuestionTemplate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, category, question, question_type, options, aliases, description, default_value, created_at
		 FROM question_templates ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

// ListTemplatesByCategory retrieves the templates in a category ordered by id.
func (db *DB) ListTemplatesByCategory(ctx context.Context, category string) ([]types.QuestionTemplate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, category, question, question_type, options, aliases, description, default_value, created_at
		 FROM question_templates WHERE category = $1 ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates for category %s: %w", category, err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

func collectTemplates(rows pgx.Rows) ([]types.QuestionTemplate, error) {
	templates := make([]types.QuestionTemplate, 0)
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, *tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate templates: %w", err)
	}
	return templates, nil
}

func scanTemplate(row pgx.Row) (*types.QuestionTemplate, error) {
	var tmpl types.QuestionTemplate
	var options, aliases []byte
	if err := row.Scan(&tmpl.ID, &tmpl.Category, &tmpl.Question, &tmpl.QuestionType,
		&options, &aliases, &tmpl.Description, &tmpl.DefaultValue, &tmpl.CreatedAt); err != nil {
		return nil, err
	}

	if len(options) > 0 {
		if err := json.Unmarshal(options, &tmpl.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options: %w", err)
		}
	}
	if len(aliases) > 0 {
		if err := json.Unmarshal(aliases, &tmpl.Aliases); err != nil {
			return nil, fmt.Errorf("failed to unmarshal aliases: %w", err)
		}
	}
	return &tmpl, nil
}
