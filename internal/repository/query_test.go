package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/issue-tracker/internal/domain"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuildIssueQueryNoFilters(t *testing.T) {
	t.Parallel()

	query, args := buildIssueQuery("frontend", domain.IssueFilter{})

	assert.Equal(t, []any{"frontend"}, args)
	assert.NotContains(t, query, "AND")
	assert.Contains(t, query, "jsonb_array_elements")
	assert.Contains(t, query, "ORDER BY issue.pos")
}

func TestBuildIssueQuerySingleField(t *testing.T) {
	t.Parallel()

	query, args := buildIssueQuery("frontend", domain.IssueFilter{CreatedBy: strPtr("alice")})

	assert.Equal(t, []any{"frontend", "alice"}, args)
	assert.Contains(t, query, "issue.value->>'created_by' = $2")
}

func TestBuildIssueQueryOpenCast(t *testing.T) {
	t.Parallel()

	query, args := buildIssueQuery("frontend", domain.IssueFilter{Open: boolPtr(true)})

	assert.Equal(t, []any{"frontend", true}, args)
	assert.Contains(t, query, "(issue.value->>'open')::boolean = $2")
}

func TestBuildIssueQueryAllFilters(t *testing.T) {
	t.Parallel()

	filter := domain.IssueFilter{
		ID:         strPtr("some-id"),
		Open:       boolPtr(false),
		IssueTitle: strPtr("Bug"),
		IssueText:  strPtr("text"),
		CreatedBy:  strPtr("alice"),
		AssignedTo: strPtr("bob"),
		StatusText: strPtr("triage"),
	}
	query, args := buildIssueQuery("frontend", filter)

	require.Len(t, args, 8)
	assert.Equal(t, "frontend", args[0])
	// String predicates bind first in field order, open last.
	assert.Equal(t, []any{"some-id", "Bug", "text", "alice", "bob", "triage"}, args[1:7])
	assert.Equal(t, false, args[7])

	for _, field := range []string{"id", "issue_title", "issue_text", "created_by", "assigned_to", "status_text"} {
		assert.Contains(t, query, "issue.value->>'"+field+"'")
	}
	assert.Equal(t, 7, strings.Count(query, "AND "))
}

func TestBuildIssueQueryPlaceholdersSequential(t *testing.T) {
	t.Parallel()

	query, _ := buildIssueQuery("p", domain.IssueFilter{
		IssueTitle: strPtr("a"),
		CreatedBy:  strPtr("b"),
	})

	assert.Contains(t, query, "issue.value->>'issue_title' = $2")
	assert.Contains(t, query, "issue.value->>'created_by' = $3")
}
