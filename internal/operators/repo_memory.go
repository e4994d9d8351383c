package operators

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu        sync.RWMutex
	operators map[string]Operator
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{operators: make(map[string]Operator)}
}

// Upsert creates or refreshes an operator, keeping the original CreatedAt.
func (r *MemoryRepo) Upsert(ctx context.Context, op Operator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.operators[op.ID]; ok {
		op.CreatedAt = existing.CreatedAt
	} else {
		op.CreatedAt = now
	}
	op.UpdatedAt = now
	r.operators[op.ID] = op
	return nil
}

// GetByID returns an operator by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Operator, error) {
	if err := ctx.Err(); err != nil {
		return Operator{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.operators[id]
	if !ok {
		return Operator{}, ErrNotFound
	}
	return op, nil
}

var _ Repo = (*MemoryRepo)(nil)
