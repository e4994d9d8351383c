package conditions

import "context"

// Filter narrows condition listings. Zero values mean "no constraint".
type Filter struct {
	Status         string
	IncludeDeleted bool
	Page           int
	PageSize       int
}

// ConditionsRepo defines persistence operations for screening conditions.
type ConditionsRepo interface {
	Create(ctx context.Context, cond Condition) error
	// GetByID never returns deleted conditions.
	GetByID(ctx context.Context, id string) (Condition, error)
	Update(ctx context.Context, cond Condition) error
	// Delete moves the condition to the deleted state.
	Delete(ctx context.Context, id string) error
	// ListActive returns active conditions in creation order (created_at
	// ascending, id ascending on ties) so matching output is reproducible.
	ListActive(ctx context.Context) ([]Condition, error)
	// List returns one page plus the unpaginated total.
	List(ctx context.Context, f Filter) ([]Condition, int, error)
}
