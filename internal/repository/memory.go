package repository

import (
	"context"
	"sync"

	"github.com/sumire/issue-tracker/internal/domain"
)

// MemoryStore keeps project documents in process memory. It backs the
// "memory" store driver for running without a database, and the service
// and handler tests. Documents are copied on the way in and out so
// callers see the same value semantics as the SQL store.
type MemoryStore struct {
	mu       sync.RWMutex
	projects []*domain.Project
	nextID   int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// FindByName returns a copy of the first project with the given name.
func (m *MemoryStore) FindByName(_ context.Context, name string) (*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.projects {
		if p.Name == name {
			return cloneProject(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create stores a copy of the project and assigns its id.
func (m *MemoryStore) Create(_ context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	project.ID = m.nextID
	m.projects = append(m.projects, cloneProject(project))
	return nil
}

// Save replaces the stored document with the given one, wholesale.
func (m *MemoryStore) Save(_ context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.projects {
		if p.ID == project.ID {
			m.projects[i] = cloneProject(project)
			return nil
		}
	}
	return domain.ErrNotFound
}

// QueryIssues returns the named project's issues narrowed by filter, in
// insertion order. An unknown project yields an empty result.
func (m *MemoryStore) QueryIssues(_ context.Context, name string, filter domain.IssueFilter) ([]domain.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	issues := []domain.Issue{}
	for _, p := range m.projects {
		if p.Name != name {
			continue
		}
		for _, issue := range p.Issues {
			if filter.Matches(issue) {
				issues = append(issues, issue)
			}
		}
		break
	}
	return issues, nil
}

func cloneProject(p *domain.Project) *domain.Project {
	c := *p
	c.Issues = append(domain.IssueList{}, p.Issues...)
	return &c
}
