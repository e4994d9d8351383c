package conditions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of ConditionsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Condition
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Condition)}
}

// Create stores a new condition.
func (r *MemoryRepo) Create(ctx context.Context, cond Condition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cond.ID] = cond
	return nil
}

// GetByID returns a non-deleted condition.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Condition, error) {
	if err := ctx.Err(); err != nil {
		return Condition{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cond, ok := r.data[id]
	if !ok || cond.Status == StatusDeleted {
		return Condition{}, ErrNotFound
	}
	return cond, nil
}

// Update rewrites a non-deleted condition.
func (r *MemoryRepo) Update(ctx context.Context, cond Condition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[cond.ID]
	if !ok || existing.Status == StatusDeleted {
		return ErrNotFound
	}
	cond.CreatedAt = existing.CreatedAt
	r.data[cond.ID] = cond
	return nil
}

// Delete moves a condition to the deleted state.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cond, ok := r.data[id]
	if !ok || cond.Status == StatusDeleted {
		return ErrNotFound
	}
	cond.Status = StatusDeleted
	cond.UpdatedAt = time.Now().UTC()
	r.data[id] = cond
	return nil
}

// ListActive returns active conditions in creation order.
func (r *MemoryRepo) ListActive(ctx context.Context) ([]Condition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Condition
	for _, cond := range r.data {
		if cond.Status == StatusActive {
			out = append(out, cond)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// List returns one page of conditions plus the unpaginated total.
func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]Condition, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []Condition
	for _, cond := range r.data {
		if f.Status != "" {
			if cond.Status != f.Status {
				continue
			}
		} else if !f.IncludeDeleted && cond.Status == StatusDeleted {
			continue
		}
		all = append(all, cond)
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
		return []Condition{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

var _ ConditionsRepo = (*MemoryRepo)(nil)
