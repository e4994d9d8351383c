package talents

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"screening-backend/internal/screening"
)

// ScreeningSource is the slice of the screening store the memory-mode
// promotion needs.
type ScreeningSource interface {
	GetByID(ctx context.Context, id string) (screening.Resume, error)
	MarkScreened(ctx context.Context, id string) error
}

// MemoryRepo is an in-memory implementation of TalentsRepo. One mutex
// covers the whole promotion so it stays atomic like the SQL transaction.
type MemoryRepo struct {
	Screening ScreeningSource

	mu           sync.RWMutex
	talents      map[string]Talent
	skillsByName map[string]Skill
	links        []TalentSkill
	promoted     map[string]bool // screening id -> promoted
}

// NewMemoryRepo constructs a MemoryRepo over a screening source.
func NewMemoryRepo(src ScreeningSource) *MemoryRepo {
	return &MemoryRepo{
		Screening:    src,
		talents:      make(map[string]Talent),
		skillsByName: make(map[string]Skill),
		promoted:     make(map[string]bool),
	}
}

// PromoteFromScreening promotes a screening resume atomically.
func (r *MemoryRepo) PromoteFromScreening(ctx context.Context, screeningID string, skillOverride []string, hasOverride bool) (Talent, []Skill, error) {
	if err := ctx.Err(); err != nil {
		return Talent{}, nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.Screening.GetByID(ctx, screeningID)
	if err != nil {
		if errors.Is(err, screening.ErrNotFound) {
			return Talent{}, nil, ErrNotFound
		}
		return Talent{}, nil, err
	}
	if r.promoted[screeningID] {
		return Talent{}, nil, ErrAlreadyPromoted
	}

	talent := Talent{
		ID:                uuid.NewString(),
		Name:              res.Name,
		School:            res.School,
		Major:             res.Major,
		Degree:            res.Degree,
		GradYear:          res.GradYear,
		Phone:             res.Phone,
		Email:             res.Email,
		ResumeObjectKey:   res.FileObjectKey,
		SourceScreeningID: screeningID,
		CreatedAt:         time.Now().UTC(),
	}

	skillNames := skillOverride
	if !hasOverride {
		skillNames = res.Skills
	}

	// Stage all writes; nothing touches shared state until every fallible
	// step has passed, so a failed promotion leaves no trace.
	now := time.Now().UTC()
	linked := make(map[string]bool)
	newSkills := make(map[string]Skill)
	var newLinks []TalentSkill
	var skills []Skill
	for _, name := range normalizeSkillNames(skillNames) {
		skill, ok := r.skillsByName[name]
		if !ok {
			skill, ok = newSkills[name]
			if !ok {
				skill = Skill{ID: uuid.NewString(), Name: name, CreatedAt: now}
				newSkills[name] = skill
			}
		}
		if linked[skill.ID] {
			continue
		}
		linked[skill.ID] = true
		newLinks = append(newLinks, TalentSkill{
			ID:        uuid.NewString(),
			TalentID:  talent.ID,
			SkillID:   skill.ID,
			CreatedAt: now,
		})
		skills = append(skills, skill)
	}

	if err := r.Screening.MarkScreened(ctx, screeningID); err != nil {
		return Talent{}, nil, err
	}

	for name, skill := range newSkills {
		r.skillsByName[name] = skill
	}
	r.links = append(r.links, newLinks...)
	r.talents[talent.ID] = talent
	r.promoted[screeningID] = true
	return talent, skills, nil
}

// GetByID returns a talent with its linked skills.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Talent, []Skill, error) {
	if err := ctx.Err(); err != nil {
		return Talent{}, nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	talent, ok := r.talents[id]
	if !ok {
		return Talent{}, nil, ErrNotFound
	}
	return talent, r.skillsForLocked(id), nil
}

func (r *MemoryRepo) skillsForLocked(talentID string) []Skill {
	byID := make(map[string]Skill, len(r.skillsByName))
	for _, s := range r.skillsByName {
		byID[s.ID] = s
	}
	var out []Skill
	for _, link := range r.links {
		if link.TalentID == talentID {
			out = append(out, byID[link.SkillID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// List returns one page of talents plus the unpaginated total.
func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]Talent, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []Talent
	for _, talent := range r.talents {
		if !matchesFilter(talent, f) {
			continue
		}
		all = append(all, talent)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := len(all)
	page, size := normalizePage(f.Page, f.PageSize)
	start := (page - 1) * size
	if start >= total {
		return []Talent{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// Graph loads the full talent-skill graph.
func (r *MemoryRepo) Graph(ctx context.Context) (GraphData, error) {
	if err := ctx.Err(); err != nil {
		return GraphData{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var data GraphData
	for _, talent := range r.talents {
		data.Talents = append(data.Talents, talent)
	}
	sort.Slice(data.Talents, func(i, j int) bool { return data.Talents[i].ID < data.Talents[j].ID })

	linkedSkills := make(map[string]bool)
	for _, link := range r.links {
		linkedSkills[link.SkillID] = true
	}
	for _, skill := range r.skillsByName {
		if linkedSkills[skill.ID] {
			data.Skills = append(data.Skills, skill)
		}
	}
	sort.Slice(data.Skills, func(i, j int) bool { return data.Skills[i].Name < data.Skills[j].Name })

	data.Links = append(data.Links, r.links...)
	return data, nil
}

func matchesFilter(talent Talent, f Filter) bool {
	if !containsFold(talent.Name, f.Name) {
		return false
	}
	if !containsFold(talent.School, f.School) {
		return false
	}
	if !containsFold(talent.Major, f.Major) {
		return false
	}
	if !containsFold(talent.Degree, f.Degree) {
		return false
	}
	if f.GradYearMin != nil && (talent.GradYear == nil || *talent.GradYear < *f.GradYearMin) {
		return false
	}
	if f.GradYearMax != nil && (talent.GradYear == nil || *talent.GradYear > *f.GradYearMax) {
		return false
	}
	return true
}

func containsFold(value *string, needle string) bool {
	if needle == "" {
		return true
	}
	if value == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*value), strings.ToLower(needle))
}

var _ TalentsRepo = (*MemoryRepo)(nil)
