// Package db provides PostgreSQL database access for the autofill engine.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the engine's tables if they do not exist.
// Safe to run repeatedly.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS question_templates (
			id            BIGINT PRIMARY KEY,
			category      TEXT NOT NULL,
			question      TEXT NOT NULL,
			question_type TEXT NOT NULL,
			options       JSONB,
			aliases       JSONB,
			description   TEXT NOT NULL DEFAULT '',
			default_value JSONB,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_question_templates_category ON question_templates (category)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id                    UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id               UUID NOT NULL UNIQUE,
			personal_info         JSONB,
			skills                JSONB NOT NULL DEFAULT '[]',
			completion_percentage INT NOT NULL DEFAULT 0,
			created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS work_experiences (
			id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id     UUID NOT NULL,
			company     TEXT NOT NULL,
			title       TEXT NOT NULL,
			location    TEXT NOT NULL DEFAULT '',
			start_date  DATE,
			end_date    DATE,
			current     BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT NOT NULL DEFAULT '',
			ordinal     INT NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_work_experiences_user ON work_experiences (user_id, ordinal)`,
		`CREATE TABLE IF NOT EXISTS education (
			id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id     UUID NOT NULL,
			school      TEXT NOT NULL,
			degree_type TEXT NOT NULL DEFAULT '',
			field       TEXT NOT NULL DEFAULT '',
			gpa         TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			start_date  DATE,
			end_date    DATE,
			ordinal     INT NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_education_user ON education (user_id, ordinal)`,
		`CREATE TABLE IF NOT EXISTS user_answers (
			id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id     UUID NOT NULL,
			template_id BIGINT NOT NULL REFERENCES question_templates (id),
			value       JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, template_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
