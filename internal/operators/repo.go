package operators

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no operator exists for the given id.
var ErrNotFound = errors.New("operator not found")

// Repo defines persistence operations for operators.
type Repo interface {
	Upsert(ctx context.Context, op Operator) error
	GetByID(ctx context.Context, id string) (Operator, error)
}
