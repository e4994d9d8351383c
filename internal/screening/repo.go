package screening

import "context"

// Filter narrows resume listings. Zero values mean "no constraint";
// text filters are case-insensitive substring matches.
type Filter struct {
	Name               string
	School             string
	Major              string
	Degree             string
	IsScreened         *bool
	MatchedConditionID string
	Page               int
	PageSize           int
}

// ResumesRepo defines persistence operations for screening resumes.
type ResumesRepo interface {
	Create(ctx context.Context, res Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	// List returns one page plus the unpaginated total, newest first.
	List(ctx context.Context, f Filter) ([]Resume, int, error)
	// MarkScreened flips the is_screened flag.
	MarkScreened(ctx context.Context, id string) error
}
