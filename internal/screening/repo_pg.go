package screening

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// PGRepo implements ResumesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, file_object_key, extracted_name, extracted_school, extracted_major,
extracted_degree, extracted_grad_year, extracted_phone, extracted_email,
extracted_skills, image_object_keys, is_screened, matched_condition_ids, created_at`

// Create inserts a new screening resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO screening_resumes (
    id,
    file_object_key,
    extracted_name,
    extracted_school,
    extracted_major,
    extracted_degree,
    extracted_grad_year,
    extracted_phone,
    extracted_email,
    extracted_skills,
    image_object_keys,
    is_screened,
    matched_condition_ids,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	skills, err := json.Marshal(emptyIfNil(res.Skills))
	if err != nil {
		return err
	}
	imageKeys, err := json.Marshal(emptyIfNil(res.ImageObjectKeys))
	if err != nil {
		return err
	}
	matched, err := json.Marshal(emptyIfNil(res.MatchedConditionIDs))
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		res.ID,
		res.FileObjectKey,
		res.Name,
		res.School,
		res.Major,
		res.Degree,
		res.GradYear,
		res.Phone,
		res.Email,
		skills,
		imageKeys,
		res.IsScreened,
		matched,
		res.CreatedAt,
	)
	return err
}

// GetByID fetches a screening resume by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM screening_resumes
WHERE id = $1
LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

// List returns one page of resumes plus the unpaginated total.
func (r *PGRepo) List(ctx context.Context, f Filter) ([]Resume, int, error) {
	var clauses []string
	var args []any

	addLike := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		clauses = append(clauses, column+" ILIKE $"+strconv.Itoa(len(args)))
	}
	addLike("extracted_name", f.Name)
	addLike("extracted_school", f.School)
	addLike("extracted_major", f.Major)
	addLike("extracted_degree", f.Degree)

	if f.IsScreened != nil {
		args = append(args, *f.IsScreened)
		clauses = append(clauses, "is_screened = $"+strconv.Itoa(len(args)))
	}
	if f.MatchedConditionID != "" {
		matched, err := json.Marshal([]string{f.MatchedConditionID})
		if err != nil {
			return nil, 0, err
		}
		args = append(args, matched)
		clauses = append(clauses, "matched_condition_ids @> $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM screening_resumes ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, size := normalizePage(f.Page, f.PageSize)
	args = append(args, size, (page-1)*size)
	listQuery := `
SELECT ` + resumeColumns + `
FROM screening_resumes ` + where + `
ORDER BY created_at DESC, id DESC
LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.DB.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, res)
	}
	return out, total, rows.Err()
}

// MarkScreened flips the is_screened flag.
func (r *PGRepo) MarkScreened(ctx context.Context, id string) error {
	const query = `UPDATE screening_resumes SET is_screened = TRUE WHERE id = $1`
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var name, school, major, degree, phone, email sql.NullString
	var gradYear sql.NullInt64
	var skills, imageKeys, matched []byte
	if err := row.Scan(
		&res.ID,
		&res.FileObjectKey,
		&name,
		&school,
		&major,
		&degree,
		&gradYear,
		&phone,
		&email,
		&skills,
		&imageKeys,
		&res.IsScreened,
		&matched,
		&res.CreatedAt,
	); err != nil {
		return Resume{}, err
	}
	res.Name = fromNullString(name)
	res.School = fromNullString(school)
	res.Major = fromNullString(major)
	res.Degree = fromNullString(degree)
	res.Phone = fromNullString(phone)
	res.Email = fromNullString(email)
	if gradYear.Valid {
		year := int(gradYear.Int64)
		res.GradYear = &year
	}
	res.Skills = decodeStrings(skills)
	res.ImageObjectKeys = decodeStrings(imageKeys)
	res.MatchedConditionIDs = decodeStrings(matched)
	return res, nil
}

func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func decodeStrings(raw []byte) []string {
	out := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
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

var _ ResumesRepo = (*PGRepo)(nil)
