package conditions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for screening conditions.
type Service struct {
	Repo ConditionsRepo
}

// CreateInput carries the fields accepted on condition creation.
type CreateInput struct {
	Name        string
	Description string
	Criteria    Criteria
	Status      string
}

// Create validates and stores a new condition.
func (s *Service) Create(ctx context.Context, in CreateInput) (Condition, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Condition{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = StatusActive
	}
	if in.Status == StatusDeleted || !ValidStatus(in.Status) {
		return Condition{}, fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}

	now := time.Now().UTC()
	cond := Condition{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Criteria:    in.Criteria,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, cond); err != nil {
		return Condition{}, err
	}
	return cond, nil
}

// Update replaces the mutable fields of an existing condition.
func (s *Service) Update(ctx context.Context, id string, in CreateInput) (Condition, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Condition{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = StatusActive
	}
	if in.Status == StatusDeleted || !ValidStatus(in.Status) {
		return Condition{}, fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}

	cond, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Condition{}, err
	}
	cond.Name = in.Name
	cond.Description = strings.TrimSpace(in.Description)
	cond.Criteria = in.Criteria
	cond.Status = in.Status
	cond.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, cond); err != nil {
		return Condition{}, err
	}
	return cond, nil
}

// Delete soft-deletes a condition.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Get returns a non-deleted condition by id.
func (s *Service) Get(ctx context.Context, id string) (Condition, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns one page of conditions plus the unpaginated total.
func (s *Service) List(ctx context.Context, f Filter) ([]Condition, int, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, f.Status)
	}
	return s.Repo.List(ctx, f)
}

// ActiveSet returns the conditions eligible for matching, in stable order.
func (s *Service) ActiveSet(ctx context.Context) ([]Condition, error) {
	return s.Repo.ListActive(ctx)
}
