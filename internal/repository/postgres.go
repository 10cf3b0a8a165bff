package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/issue-tracker/internal/domain"
)

// ProjectRepository persists project documents in Postgres. Each project
// is one row; its issues live in a single JSONB array column, keeping
// the embedded-document layout the API contract assumes.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByName retrieves the first project with the given name. Names are
// not unique; insertion order decides which row wins.
func (r *ProjectRepository) FindByName(ctx context.Context, name string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.GetContext(ctx, &project,
		`SELECT id, name, issues FROM projects WHERE name = $1 ORDER BY id LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project by name %q: %w", name, err)
	}
	return &project, nil
}

// Create inserts a new project document and assigns its row id.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO projects (name, issues) VALUES ($1, $2) RETURNING id`,
		project.Name, project.Issues).Scan(&project.ID)
	if err != nil {
		return fmt.Errorf("insert project %q: %w", project.Name, err)
	}
	return nil
}

// Save writes the project's issues array back wholesale. Concurrent
// writers to the same project race at document granularity and the last
// write wins; callers accept that.
func (r *ProjectRepository) Save(ctx context.Context, project *domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET issues = $2 WHERE id = $1`, project.ID, project.Issues)
	if err != nil {
		return fmt.Errorf("save project %q: %w", project.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save project %q: %w", project.Name, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// QueryIssues returns the named project's issues narrowed by filter, in
// insertion order. An unknown project yields an empty result.
func (r *ProjectRepository) QueryIssues(ctx context.Context, name string, filter domain.IssueFilter) ([]domain.Issue, error) {
	query, args := buildIssueQuery(name, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query issues for project %q: %w", name, err)
	}
	defer rows.Close()

	issues := []domain.Issue{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		var issue domain.Issue
		if err := json.Unmarshal(raw, &issue); err != nil {
			return nil, fmt.Errorf("decode issue: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query issues for project %q: %w", name, err)
	}
	return issues, nil
}
