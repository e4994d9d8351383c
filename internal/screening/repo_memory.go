package screening

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of ResumesRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Resume)}
}

// Create stores a new resume.
func (r *MemoryRepo) Create(ctx context.Context, res Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[res.ID] = res
	return nil
}

// GetByID returns a resume by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.data[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return res, nil
}

// List returns one page of resumes plus the unpaginated total.
func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]Resume, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []Resume
	for _, res := range r.data {
		if !matchesFilter(res, f) {
			continue
		}
		all = append(all, res)
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
		return []Resume{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// MarkScreened flips the is_screened flag.
func (r *MemoryRepo) MarkScreened(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	res.IsScreened = true
	r.data[id] = res
	return nil
}

func matchesFilter(res Resume, f Filter) bool {
	if !containsFold(res.Name, f.Name) {
		return false
	}
	if !containsFold(res.School, f.School) {
		return false
	}
	if !containsFold(res.Major, f.Major) {
		return false
	}
	if !containsFold(res.Degree, f.Degree) {
		return false
	}
	if f.IsScreened != nil && res.IsScreened != *f.IsScreened {
		return false
	}
	if f.MatchedConditionID != "" {
		hit := false
		for _, id := range res.MatchedConditionIDs {
			if id == f.MatchedConditionID {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
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

var _ ResumesRepo = (*MemoryRepo)(nil)
