package domain

// IssueFilter narrows a project's issues to those matching every present
// field by exact equality. Nil fields impose no constraint, so the zero
// filter matches everything.
type IssueFilter struct {
	ID         *string
	Open       *bool
	IssueTitle *string
	IssueText  *string
	CreatedBy  *string
	AssignedTo *string
	StatusText *string
}

// Matches reports whether issue satisfies every present filter field.
func (f IssueFilter) Matches(issue Issue) bool {
	conds := []struct {
		want *string
		got  string
	}{
		{f.ID, issue.ID},
		{f.IssueTitle, issue.IssueTitle},
		{f.IssueText, issue.IssueText},
		{f.CreatedBy, issue.CreatedBy},
		{f.AssignedTo, issue.AssignedTo},
		{f.StatusText, issue.StatusText},
	}
	for _, c := range conds {
		if c.want != nil && *c.want != c.got {
			return false
		}
	}
	if f.Open != nil && *f.Open != issue.Open {
		return false
	}
	return true
}
