package talents

import (
	"context"
	"errors"

	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/telemetry"
)

// Service contains business logic for the talent pool.
type Service struct {
	Repo TalentsRepo
}

// Promote converts a screening resume into a talent. A nil skillNames
// keeps the resume's extracted skills; a non-nil list replaces them, even
// when empty.
func (s *Service) Promote(ctx context.Context, screeningID string, skillNames []string) (Talent, []Skill, error) {
	if screeningID == "" {
		return Talent{}, nil, ErrInvalidInput
	}

	talent, skills, err := s.Repo.PromoteFromScreening(ctx, screeningID, skillNames, skillNames != nil)
	if err != nil {
		if errors.Is(err, ErrAlreadyPromoted) {
			metrics.IncPromotionConflict()
		}
		return Talent{}, nil, err
	}

	metrics.IncTalentPromoted()
	telemetry.Info("talent promoted", map[string]any{
		"talent_id":    talent.ID,
		"screening_id": screeningID,
		"skill_count":  len(skills),
	})
	return talent, skills, nil
}

// Get returns a talent with its skills.
func (s *Service) Get(ctx context.Context, id string) (Talent, []Skill, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns one page of talents plus the unpaginated total.
func (s *Service) List(ctx context.Context, f Filter) ([]Talent, int, error) {
	return s.Repo.List(ctx, f)
}

// Graph returns the talent-skill graph.
func (s *Service) Graph(ctx context.Context) (GraphData, error) {
	return s.Repo.Graph(ctx)
}
