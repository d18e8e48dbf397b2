package schema

import (
	"context"
	"fmt"

	"staff-directory/internal/database"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_attributes (
		tenant TEXT NOT NULL,
		user_id UUID NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (tenant, user_id, key)
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		tenant TEXT NOT NULL,
		id BIGINT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		excerpt TEXT NOT NULL DEFAULT '',
		thumbnail TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'publish',
		post_type TEXT NOT NULL DEFAULT 'post',
		PRIMARY KEY (tenant, id)
	)`,
}

// Ensure creates the backing tables when they do not exist yet. It is
// idempotent and safe to run on every startup.
func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
