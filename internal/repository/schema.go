package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// name intentionally has no unique constraint: the store never enforced
// one and lookups take the first matching row.
const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id     BIGSERIAL PRIMARY KEY,
    name   TEXT NOT NULL,
    issues JSONB NOT NULL DEFAULT '[]'::jsonb
);

CREATE INDEX IF NOT EXISTS idx_projects_name ON projects (name);
`

// EnsureSchema creates the projects table if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
