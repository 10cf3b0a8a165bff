package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sumire/issue-tracker/internal/domain"
)

// ProjectStore defines the project persistence interface consumed by
// IssueService. Find/Create/Save operate on whole project documents;
// there is no isolation across a find-then-save sequence, so concurrent
// writers to one project can lose an update (last write wins). That is
// the accepted storage model, not something this layer works around.
type ProjectStore interface {
	FindByName(ctx context.Context, name string) (*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) error
	Save(ctx context.Context, project *domain.Project) error
	QueryIssues(ctx context.Context, name string, filter domain.IssueFilter) ([]domain.Issue, error)
}

// IssueService implements the four issue operations against a ProjectStore.
type IssueService struct {
	store ProjectStore
	now   func() time.Time
}

// NewIssueService creates a new IssueService.
func NewIssueService(store ProjectStore) *IssueService {
	return &IssueService{store: store, now: time.Now}
}

// List returns the project's issues matching every present filter field,
// in insertion order. Unknown projects and empty matches both yield an
// empty slice, never an error.
func (s *IssueService) List(ctx context.Context, projectName string, filter domain.IssueFilter) ([]domain.Issue, error) {
	issues, err := s.store.QueryIssues(ctx, projectName, filter)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	if issues == nil {
		issues = []domain.Issue{}
	}
	return issues, nil
}

// CreateIssueInput carries the create payload. Required-field presence
// is the caller's responsibility; this layer assumes a valid input.
type CreateIssueInput struct {
	IssueTitle string
	IssueText  string
	CreatedBy  string
	AssignedTo string
	StatusText string
}

// Create appends a new issue to the named project, creating the project
// first if it does not exist. The issue gets a fresh id, open=true and
// equal creation/update timestamps.
func (s *IssueService) Create(ctx context.Context, projectName string, in CreateIssueInput) (*domain.Issue, error) {
	now := s.now()
	issue := domain.Issue{
		ID:         domain.NewID(),
		IssueTitle: in.IssueTitle,
		IssueText:  in.IssueText,
		CreatedBy:  in.CreatedBy,
		AssignedTo: in.AssignedTo,
		StatusText: in.StatusText,
		Open:       true,
		CreatedOn:  now,
		UpdatedOn:  now,
	}

	project, err := s.store.FindByName(ctx, projectName)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		project = &domain.Project{Name: projectName, Issues: domain.IssueList{issue}}
		if err := s.store.Create(ctx, project); err != nil {
			return nil, fmt.Errorf("create project %q: %w", projectName, err)
		}
	case err != nil:
		return nil, fmt.Errorf("find project %q: %w", projectName, err)
	default:
		project.Issues = append(project.Issues, issue)
		if err := s.store.Save(ctx, project); err != nil {
			return nil, fmt.Errorf("save project %q: %w", projectName, err)
		}
	}

	return &issue, nil
}

// UpdateIssueInput carries the update payload. String zero values mean
// "not supplied"; Open is a plain bool because the wire contract writes
// it unconditionally.
type UpdateIssueInput struct {
	ID         string
	IssueTitle string
	IssueText  string
	CreatedBy  string
	AssignedTo string
	StatusText string
	Open       bool
}

// HasFields reports whether any mutable field carries a value. Empty
// strings and a false Open count as absent, matching the wire contract's
// falsy check.
func (in UpdateIssueInput) HasFields() bool {
	return in.IssueTitle != "" || in.IssueText != "" || in.CreatedBy != "" ||
		in.AssignedTo != "" || in.StatusText != "" || in.Open
}

// Update merges the supplied fields into the target issue and refreshes
// its update timestamp. Empty string values leave the field untouched.
// Open is always overwritten with the submitted value, absent meaning
// false — the contract mandates this literal behavior even though it
// breaks the partial-merge pattern of the other fields.
func (s *IssueService) Update(ctx context.Context, projectName string, in UpdateIssueInput) error {
	project, err := s.store.FindByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("find project %q: %w", projectName, err)
	}

	id, err := domain.ParseID(in.ID)
	if err != nil {
		return err
	}
	issue := project.Issues.Find(id)
	if issue == nil {
		return domain.ErrNotFound
	}

	if in.IssueTitle != "" {
		issue.IssueTitle = in.IssueTitle
	}
	if in.IssueText != "" {
		issue.IssueText = in.IssueText
	}
	if in.CreatedBy != "" {
		issue.CreatedBy = in.CreatedBy
	}
	if in.AssignedTo != "" {
		issue.AssignedTo = in.AssignedTo
	}
	if in.StatusText != "" {
		issue.StatusText = in.StatusText
	}
	issue.Open = in.Open
	issue.UpdatedOn = s.now()

	if err := s.store.Save(ctx, project); err != nil {
		return fmt.Errorf("save project %q: %w", projectName, err)
	}
	return nil
}

// Delete removes the issue from its project's sequence. The project
// document remains even when its last issue goes.
func (s *IssueService) Delete(ctx context.Context, projectName, rawID string) error {
	project, err := s.store.FindByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("find project %q: %w", projectName, err)
	}

	id, err := domain.ParseID(rawID)
	if err != nil {
		return err
	}
	if !project.Issues.Remove(id) {
		return domain.ErrNotFound
	}

	if err := s.store.Save(ctx, project); err != nil {
		return fmt.Errorf("save project %q: %w", projectName, err)
	}
	return nil
}
