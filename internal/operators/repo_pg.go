package operators

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert creates or refreshes an operator row.
func (r *PGRepo) Upsert(ctx context.Context, op Operator) error {
	const query = `
INSERT INTO operators (id, email, full_name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  picture_url = EXCLUDED.picture_url,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		op.ID,
		op.Email,
		nullableString(op.FullName),
		nullableString(op.PictureURL),
	)
	return err
}

// GetByID fetches an operator by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Operator, error) {
	const query = `
SELECT id, email, full_name, picture_url, created_at, updated_at
FROM operators
WHERE id = $1
LIMIT 1`
	var op Operator
	var fullName, pictureURL sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&op.ID,
		&op.Email,
		&fullName,
		&pictureURL,
		&op.CreatedAt,
		&op.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Operator{}, ErrNotFound
		}
		return Operator{}, err
	}
	if fullName.Valid {
		op.FullName = fullName.String
	}
	if pictureURL.Valid {
		op.PictureURL = pictureURL.String
	}
	return op, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
