package conditions

import (
	"errors"
	"time"
)

// Condition lifecycle states. Deleted conditions stay in storage but are
// invisible to reads unless explicitly requested.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

var (
	// ErrNotFound is returned when a condition does not exist or is deleted.
	ErrNotFound = errors.New("condition not found")
	// ErrInvalidInput is returned for requests that fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Condition is a screening condition evaluated against incoming resumes.
type Condition struct {
	ID          string
	Name        string
	Description string
	Criteria    Criteria
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}
