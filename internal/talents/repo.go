package talents

import "context"

// Filter narrows talent listings. Zero values mean "no constraint";
// text filters are case-insensitive substring matches.
type Filter struct {
	Name        string
	School      string
	Major       string
	Degree      string
	GradYearMin *int
	GradYearMax *int
	Page        int
	PageSize    int
}

// GraphData is the raw material for the talent-skill graph view: every
// talent, every skill linked to at least one talent, and the join rows.
type GraphData struct {
	Talents []Talent
	Skills  []Skill
	Links   []TalentSkill
}

// TalentsRepo defines persistence operations for the talent pool.
//
// PromoteFromScreening runs the whole promotion atomically: resolve the
// source resume (ErrNotFound if missing), enforce at-most-one promotion
// per resume (ErrAlreadyPromoted), create the talent, get-or-create each
// skill by unique name plus the join row per unique pair, and flip the
// resume's is_screened flag. skillOverride is honored even when empty;
// with hasOverride false the resume's extracted skills are used.
type TalentsRepo interface {
	PromoteFromScreening(ctx context.Context, screeningID string, skillOverride []string, hasOverride bool) (Talent, []Skill, error)
	GetByID(ctx context.Context, id string) (Talent, []Skill, error)
	// List returns one page plus the unpaginated total, newest first.
	List(ctx context.Context, f Filter) ([]Talent, int, error)
	Graph(ctx context.Context) (GraphData, error)
}
