package talents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements TalentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const talentColumns = `id, name, gender, school, major, degree, grad_year, phone, email,
resume_object_key, source_screening_id, created_at`

// PromoteFromScreening promotes a screening resume in one transaction. The
// row lock on the screening row serializes concurrent promotions of the
// same resume; the UNIQUE constraint on source_screening_id is the backstop.
func (r *PGRepo) PromoteFromScreening(ctx context.Context, screeningID string, skillOverride []string, hasOverride bool) (Talent, []Skill, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Talent{}, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const resumeQuery = `
SELECT file_object_key, extracted_name, extracted_school, extracted_major,
       extracted_degree, extracted_grad_year, extracted_phone, extracted_email,
       extracted_skills
FROM screening_resumes
WHERE id = $1
FOR UPDATE`

	var fileKey string
	var name, school, major, degree, phone, email sql.NullString
	var gradYear sql.NullInt64
	var skillsRaw []byte
	err = tx.QueryRowContext(ctx, resumeQuery, screeningID).Scan(
		&fileKey, &name, &school, &major, &degree, &gradYear, &phone, &email, &skillsRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Talent{}, nil, ErrNotFound
		}
		return Talent{}, nil, err
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM talents WHERE source_screening_id = $1)`, screeningID).Scan(&exists)
	if err != nil {
		return Talent{}, nil, err
	}
	if exists {
		return Talent{}, nil, ErrAlreadyPromoted
	}

	talent := Talent{
		ID:                uuid.NewString(),
		Name:              fromNullString(name),
		School:            fromNullString(school),
		Major:             fromNullString(major),
		Degree:            fromNullString(degree),
		Phone:             fromNullString(phone),
		Email:             fromNullString(email),
		ResumeObjectKey:   fileKey,
		SourceScreeningID: screeningID,
		CreatedAt:         time.Now().UTC(),
	}
	if gradYear.Valid {
		year := int(gradYear.Int64)
		talent.GradYear = &year
	}

	const insertTalent = `
INSERT INTO talents (id, name, gender, school, major, degree, grad_year, phone, email,
                     resume_object_key, source_screening_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = tx.ExecContext(ctx, insertTalent,
		talent.ID, talent.Name, talent.Gender, talent.School, talent.Major, talent.Degree,
		talent.GradYear, talent.Phone, talent.Email,
		talent.ResumeObjectKey, talent.SourceScreeningID, talent.CreatedAt)
	if err != nil {
		return Talent{}, nil, fmt.Errorf("insert talent: %w", err)
	}

	skillNames := skillOverride
	if !hasOverride {
		skillNames = []string{}
		if len(skillsRaw) > 0 {
			_ = json.Unmarshal(skillsRaw, &skillNames)
		}
	}

	skills, err := linkSkills(ctx, tx, talent.ID, normalizeSkillNames(skillNames))
	if err != nil {
		return Talent{}, nil, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE screening_resumes SET is_screened = TRUE WHERE id = $1`, screeningID)
	if err != nil {
		return Talent{}, nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return Talent{}, nil, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return Talent{}, nil, err
	}
	return talent, skills, nil
}

// linkSkills get-or-creates each skill by unique name and the join row per
// unique (talent, skill) pair. Duplicate names in the input collapse onto
// the same skill row.
func linkSkills(ctx context.Context, tx *sql.Tx, talentID string, names []string) ([]Skill, error) {
	const upsertSkill = `
INSERT INTO skills (id, name, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name, created_at`
	const upsertLink = `
INSERT INTO talent_skills (id, talent_id, skill_id, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (talent_id, skill_id) DO NOTHING`

	now := time.Now().UTC()
	seen := make(map[string]bool, len(names))
	out := make([]Skill, 0, len(names))
	for _, name := range names {
		var skill Skill
		err := tx.QueryRowContext(ctx, upsertSkill, uuid.NewString(), name, now).
			Scan(&skill.ID, &skill.Name, &skill.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("upsert skill %q: %w", name, err)
		}
		if seen[skill.ID] {
			continue
		}
		seen[skill.ID] = true
		if _, err := tx.ExecContext(ctx, upsertLink, uuid.NewString(), talentID, skill.ID, now); err != nil {
			return nil, fmt.Errorf("link skill %q: %w", name, err)
		}
		out = append(out, skill)
	}
	return out, nil
}

// GetByID fetches a talent with its linked skills.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Talent, []Skill, error) {
	const query = `
SELECT ` + talentColumns + `
FROM talents
WHERE id = $1
LIMIT 1`
	talent, err := scanTalent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Talent{}, nil, ErrNotFound
		}
		return Talent{}, nil, err
	}

	const skillsQuery = `
SELECT s.id, s.name, s.created_at
FROM skills s
JOIN talent_skills ts ON ts.skill_id = s.id
WHERE ts.talent_id = $1
ORDER BY s.name ASC`
	rows, err := r.DB.QueryContext(ctx, skillsQuery, id)
	if err != nil {
		return Talent{}, nil, err
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return Talent{}, nil, err
		}
		skills = append(skills, s)
	}
	return talent, skills, rows.Err()
}

// List returns one page of talents plus the unpaginated total.
func (r *PGRepo) List(ctx context.Context, f Filter) ([]Talent, int, error) {
	var clauses []string
	var args []any

	addLike := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		clauses = append(clauses, column+" ILIKE $"+strconv.Itoa(len(args)))
	}
	addLike("name", f.Name)
	addLike("school", f.School)
	addLike("major", f.Major)
	addLike("degree", f.Degree)

	if f.GradYearMin != nil {
		args = append(args, *f.GradYearMin)
		clauses = append(clauses, "grad_year >= $"+strconv.Itoa(len(args)))
	}
	if f.GradYearMax != nil {
		args = append(args, *f.GradYearMax)
		clauses = append(clauses, "grad_year <= $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM talents `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, size := normalizePage(f.Page, f.PageSize)
	args = append(args, size, (page-1)*size)
	listQuery := `
SELECT ` + talentColumns + `
FROM talents ` + where + `
ORDER BY created_at DESC, id DESC
LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.DB.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Talent
	for rows.Next() {
		talent, err := scanTalent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, talent)
	}
	return out, total, rows.Err()
}

// Graph loads the full talent-skill graph.
func (r *PGRepo) Graph(ctx context.Context) (GraphData, error) {
	var data GraphData

	rows, err := r.DB.QueryContext(ctx, `
SELECT `+talentColumns+`
FROM talents
ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return GraphData{}, err
	}
	defer rows.Close()
	for rows.Next() {
		talent, err := scanTalent(rows)
		if err != nil {
			return GraphData{}, err
		}
		data.Talents = append(data.Talents, talent)
	}
	if err := rows.Err(); err != nil {
		return GraphData{}, err
	}

	skillRows, err := r.DB.QueryContext(ctx, `
SELECT DISTINCT s.id, s.name, s.created_at
FROM skills s
JOIN talent_skills ts ON ts.skill_id = s.id
ORDER BY s.name ASC`)
	if err != nil {
		return GraphData{}, err
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var s Skill
		if err := skillRows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return GraphData{}, err
		}
		data.Skills = append(data.Skills, s)
	}
	if err := skillRows.Err(); err != nil {
		return GraphData{}, err
	}

	linkRows, err := r.DB.QueryContext(ctx, `
SELECT id, talent_id, skill_id, created_at
FROM talent_skills
ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return GraphData{}, err
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var link TalentSkill
		if err := linkRows.Scan(&link.ID, &link.TalentID, &link.SkillID, &link.CreatedAt); err != nil {
			return GraphData{}, err
		}
		data.Links = append(data.Links, link)
	}
	return data, linkRows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTalent(row rowScanner) (Talent, error) {
	var talent Talent
	var name, gender, school, major, degree, phone, email sql.NullString
	var gradYear sql.NullInt64
	if err := row.Scan(
		&talent.ID,
		&name,
		&gender,
		&school,
		&major,
		&degree,
		&gradYear,
		&phone,
		&email,
		&talent.ResumeObjectKey,
		&talent.SourceScreeningID,
		&talent.CreatedAt,
	); err != nil {
		return Talent{}, err
	}
	talent.Name = fromNullString(name)
	talent.Gender = fromNullString(gender)
	talent.School = fromNullString(school)
	talent.Major = fromNullString(major)
	talent.Degree = fromNullString(degree)
	talent.Phone = fromNullString(phone)
	talent.Email = fromNullString(email)
	if gradYear.Valid {
		year := int(gradYear.Int64)
		talent.GradYear = &year
	}
	return talent, nil
}

func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
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

var _ TalentsRepo = (*PGRepo)(nil)
