package conditions

import "strings"

// Criteria is the matching rule set stored as JSON on a condition. Every
// clause is optional; an absent clause constrains nothing.
type Criteria struct {
	NameKeywords []string `json:"name_keywords,omitempty"`
	Schools      []string `json:"schools,omitempty"`
	Majors       []string `json:"majors,omitempty"`
	Degrees      []string `json:"degrees,omitempty"`
	GradYearMin  *int     `json:"grad_year_min,omitempty"`
	GradYearMax  *int     `json:"grad_year_max,omitempty"`
}

// Candidate is the normalized field view a criteria set is evaluated
// against. Nil fields mean the value is unknown.
type Candidate struct {
	Name     *string
	School   *string
	Major    *string
	Degree   *string
	GradYear *int
}

// Matches evaluates the criteria against a candidate. Clauses are ANDed;
// an empty criteria set matches everything.
func (cr Criteria) Matches(cand Candidate) bool {
	if len(cr.NameKeywords) > 0 {
		if cand.Name == nil {
			return false
		}
		name := strings.ToLower(*cand.Name)
		hit := false
		for _, kw := range cr.NameKeywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if !memberOf(cr.Schools, cand.School) {
		return false
	}
	if !memberOf(cr.Majors, cand.Major) {
		return false
	}
	if !memberOf(cr.Degrees, cand.Degree) {
		return false
	}

	// An unknown grad year never fails a range clause.
	if cand.GradYear != nil {
		if cr.GradYearMin != nil && *cand.GradYear < *cr.GradYearMin {
			return false
		}
		if cr.GradYearMax != nil && *cand.GradYear > *cr.GradYearMax {
			return false
		}
	}

	return true
}

func memberOf(allowed []string, value *string) bool {
	if len(allowed) == 0 {
		return true
	}
	if value == nil {
		return false
	}
	for _, a := range allowed {
		if a == *value {
			return true
		}
	}
	return false
}
