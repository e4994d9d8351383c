package operators

import (
	"context"
	"errors"
	"strings"
)

// Service contains business logic for operator accounts.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the operator identity after a successful OAuth
// sign-in so sessions survive token refreshes.
func (s *Service) UpsertFromAuth(ctx context.Context, op Operator) error {
	if s == nil || s.Repo == nil {
		return errors.New("operators service not configured")
	}
	if strings.TrimSpace(op.ID) == "" || strings.TrimSpace(op.Email) == "" {
		return errors.New("operator id and email are required")
	}
	return s.Repo.Upsert(ctx, op)
}

// GetByID returns an operator by id.
func (s *Service) GetByID(ctx context.Context, id string) (Operator, error) {
	if s == nil || s.Repo == nil {
		return Operator{}, errors.New("operators service not configured")
	}
	if strings.TrimSpace(id) == "" {
		return Operator{}, errors.New("operator id is required")
	}
	return s.Repo.GetByID(ctx, id)
}
