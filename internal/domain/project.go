package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Project is a named grouping entity owning an ordered collection of
// issues. Names carry no uniqueness guarantee; lookups take the first
// matching document.
type Project struct {
	ID     int64     `json:"-" db:"id"`
	Name   string    `json:"name" db:"name"`
	Issues IssueList `json:"issues" db:"issues"`
}

// IssueList is a project's embedded issues in insertion order. It
// round-trips through the store as a single JSONB value.
type IssueList []Issue

// Find returns a pointer to the issue with the given id, or nil.
func (l IssueList) Find(id string) *Issue {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

// Remove deletes the issue with the given id, preserving the order of
// the remaining issues. It reports whether an issue was removed.
func (l *IssueList) Remove(id string) bool {
	for i := range *l {
		if (*l)[i].ID == id {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Value implements driver.Valuer so the list can be written as JSONB.
func (l IssueList) Value() (driver.Value, error) {
	if l == nil {
		l = IssueList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for reading the JSONB column back.
func (l *IssueList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("scan issue list: unsupported type %T", src)
	}
}
