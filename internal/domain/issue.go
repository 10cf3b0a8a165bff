package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Issue is a single tracked work item. Issues only exist embedded in a
// project document; they have no collection of their own.
type Issue struct {
	ID         string    `json:"id"`
	IssueTitle string    `json:"issue_title"`
	IssueText  string    `json:"issue_text"`
	CreatedBy  string    `json:"created_by"`
	AssignedTo string    `json:"assigned_to"`
	StatusText string    `json:"status_text"`
	Open       bool      `json:"open"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// ErrMalformedID marks a client-supplied identifier that does not parse.
var ErrMalformedID = errors.New("malformed id")

// NewID returns a fresh issue identifier. Ids are assigned exactly once,
// at creation, and are unique across the whole store.
func NewID() string {
	return uuid.NewString()
}

// ParseID validates a client-supplied identifier and returns its
// canonical form.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedID, err)
	}
	return id.String(), nil
}
