package conditions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
)

// PGRepo implements ConditionsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const conditionColumns = `id, name, description, criteria, status, created_at, updated_at`

// Create inserts a new condition.
func (r *PGRepo) Create(ctx context.Context, cond Condition) error {
	const query = `
INSERT INTO screening_conditions (id, name, description, criteria, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	criteria, err := json.Marshal(cond.Criteria)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		cond.ID, cond.Name, cond.Description, criteria, cond.Status, cond.CreatedAt, cond.UpdatedAt)
	return err
}

// GetByID fetches a non-deleted condition.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Condition, error) {
	const query = `
SELECT ` + conditionColumns + `
FROM screening_conditions
WHERE id = $1 AND status <> 'deleted'
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	cond, err := scanCondition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Condition{}, ErrNotFound
		}
		return Condition{}, err
	}
	return cond, nil
}

// Update rewrites the mutable fields of a non-deleted condition.
func (r *PGRepo) Update(ctx context.Context, cond Condition) error {
	const query = `
UPDATE screening_conditions
SET name = $1, description = $2, criteria = $3, status = $4, updated_at = $5
WHERE id = $6 AND status <> 'deleted'`

	criteria, err := json.Marshal(cond.Criteria)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		cond.Name, cond.Description, criteria, cond.Status, cond.UpdatedAt, cond.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete moves a condition to the deleted state.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `
UPDATE screening_conditions
SET status = 'deleted', updated_at = NOW()
WHERE id = $1 AND status <> 'deleted'`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns active conditions in stable creation order.
func (r *PGRepo) ListActive(ctx context.Context) ([]Condition, error) {
	const query = `
SELECT ` + conditionColumns + `
FROM screening_conditions
WHERE status = 'active'
ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Condition
	for rows.Next() {
		cond, err := scanCondition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
	}
	return out, rows.Err()
}

// List returns a page of conditions plus the unpaginated total.
func (r *PGRepo) List(ctx context.Context, f Filter) ([]Condition, int, error) {
	where := `WHERE status <> 'deleted'`
	args := []any{}
	if f.Status != "" {
		where = `WHERE status = $1`
		args = append(args, f.Status)
	} else if f.IncludeDeleted {
		where = ``
	}

	countQuery := `SELECT COUNT(*) FROM screening_conditions ` + where
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, size := normalizePage(f.Page, f.PageSize)
	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	listQuery := `
SELECT ` + conditionColumns + `
FROM screening_conditions ` + where + `
ORDER BY created_at DESC, id DESC
LIMIT $` + strconv.Itoa(limitArg) + ` OFFSET $` + strconv.Itoa(offsetArg)
	args = append(args, size, (page-1)*size)

	rows, err := r.DB.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Condition
	for rows.Next() {
		cond, err := scanCondition(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, cond)
	}
	return out, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCondition(row rowScanner) (Condition, error) {
	var cond Condition
	var description sql.NullString
	var criteria []byte
	if err := row.Scan(
		&cond.ID,
		&cond.Name,
		&description,
		&criteria,
		&cond.Status,
		&cond.CreatedAt,
		&cond.UpdatedAt,
	); err != nil {
		return Condition{}, err
	}
	if description.Valid {
		cond.Description = description.String
	}
	if len(criteria) > 0 {
		// Malformed stored criteria degrade to match-all rather than
		// poisoning every listing.
		_ = json.Unmarshal(criteria, &cond.Criteria)
	}
	return cond, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

var _ ConditionsRepo = (*PGRepo)(nil)
