package talents

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when the talent or source resume is missing.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyPromoted is returned when a talent already references the
	// source screening resume.
	ErrAlreadyPromoted = errors.New("resume already promoted")
	// ErrInvalidInput is returned for requests that fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Talent is a promoted candidate in the talent pool.
type Talent struct {
	ID                string
	Name              *string
	Gender            *string
	School            *string
	Major             *string
	Degree            *string
	GradYear          *int
	Phone             *string
	Email             *string
	ResumeObjectKey   string
	SourceScreeningID string
	CreatedAt         time.Time
}

// Skill is a globally de-duplicated skill, unique by name.
type Skill struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// TalentSkill links a talent to a skill, unique per pair.
type TalentSkill struct {
	ID        string
	TalentID  string
	SkillID   string
	CreatedAt time.Time
}

// normalizeSkillNames trims each name and drops empties, preserving order.
func normalizeSkillNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
