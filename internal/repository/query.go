package repository

import (
	"fmt"
	"strings"

	"github.com/sumire/issue-tracker/internal/domain"
)

// buildIssueQuery unnests the project's issues array and narrows it with
// one equality predicate per present filter field — absent fields add no
// clause. Ordering by array position preserves insertion order. Field
// names come from the fixed list below, never from the request.
func buildIssueQuery(name string, filter domain.IssueFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT issue.value
FROM projects,
     jsonb_array_elements(projects.issues) WITH ORDINALITY AS issue(value, pos)
WHERE projects.id = (SELECT id FROM projects WHERE name = $1 ORDER BY id LIMIT 1)`)
	args := []any{name}

	conds := []struct {
		field string
		value *string
	}{
		{"id", filter.ID},
		{"issue_title", filter.IssueTitle},
		{"issue_text", filter.IssueText},
		{"created_by", filter.CreatedBy},
		{"assigned_to", filter.AssignedTo},
		{"status_text", filter.StatusText},
	}
	for _, c := range conds {
		if c.value == nil {
			continue
		}
		args = append(args, *c.value)
		fmt.Fprintf(&sb, "\n  AND issue.value->>'%s' = $%d", c.field, len(args))
	}
	if filter.Open != nil {
		args = append(args, *filter.Open)
		fmt.Fprintf(&sb, "\n  AND (issue.value->>'open')::boolean = $%d", len(args))
	}

	sb.WriteString("\nORDER BY issue.pos")
	return sb.String(), args
}
