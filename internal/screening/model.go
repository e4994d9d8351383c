package screening

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a screening resume does not exist.
	ErrNotFound = errors.New("screening resume not found")
	// ErrInvalidInput is returned for uploads that fail validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDependency is returned when storage, extraction or the LLM
	// transport fail before a row is written.
	ErrDependency = errors.New("upstream dependency failure")
)

// Resume is a screening resume record. Matched condition ids are computed
// once at ingestion from the then-active condition set and never recomputed.
type Resume struct {
	ID                  string
	FileObjectKey       string
	Name                *string
	School              *string
	Major               *string
	Degree              *string
	GradYear            *int
	Phone               *string
	Email               *string
	Skills              []string
	ImageObjectKeys     []string
	IsScreened          bool
	MatchedConditionIDs []string
	CreatedAt           time.Time
}
