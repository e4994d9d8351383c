package screening

import (
	"regexp"
	"strings"
)

// NormalizedFields is the canonical field set produced from raw LLM
// extraction output. Nil pointers mean the field was absent.
type NormalizedFields struct {
	Name     *string
	School   *string
	Major    *string
	Degree   *string
	GradYear *int
	Phone    *string
	Email    *string
	Skills   []string
}

// Source key lists per canonical field, first present non-empty value wins.
// Extraction output mixes English and Chinese keys depending on the model
// and the resume language.
var (
	nameKeys     = []string{"name", "姓名"}
	schoolKeys   = []string{"school", "毕业院校", "院校"}
	majorKeys    = []string{"major", "专业"}
	degreeKeys   = []string{"degree", "学位", "学历"}
	gradYearKeys = []string{"grad_year", "毕业年份", "毕业时间"}
	phoneKeys    = []string{"phone", "mobile", "手机号", "手机"}
	emailKeys    = []string{"email", "邮箱"}
	skillKeys    = []string{"skills", "skill_list"}
)

var gradYearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// Normalize maps a loosely-typed extraction result onto the canonical
// field set. It never fails; unusable values come out as absent.
func Normalize(raw map[string]any) NormalizedFields {
	out := NormalizedFields{
		Name:   pickString(raw, nameKeys),
		School: pickString(raw, schoolKeys),
		Major:  pickString(raw, majorKeys),
		Degree: pickString(raw, degreeKeys),
		Phone:  pickString(raw, phoneKeys),
		Email:  pickString(raw, emailKeys),
		Skills: []string{},
	}

	for _, key := range gradYearKeys {
		if year := toGradYear(raw[key]); year != nil {
			out.GradYear = year
			break
		}
	}

	for _, key := range skillKeys {
		if skills := toSkills(raw[key]); len(skills) > 0 {
			out.Skills = skills
			break
		}
	}

	return out
}

func pickString(raw map[string]any, keys []string) *string {
	for _, key := range keys {
		if s := toString(raw[key]); s != nil {
			return s
		}
	}
	return nil
}

func toString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func toGradYear(v any) *int {
	switch value := v.(type) {
	case float64:
		// JSON numbers decode as float64.
		year := int(value)
		if plausibleYear(year) {
			return &year
		}
	case int:
		year := value
		if plausibleYear(year) {
			return &year
		}
	case string:
		if match := gradYearPattern.FindString(value); match != "" {
			year := 0
			for _, ch := range match {
				year = year*10 + int(ch-'0')
			}
			return &year
		}
	}
	return nil
}

func plausibleYear(year int) bool {
	return year >= 1900 && year <= 2099
}

var skillSplitter = regexp.MustCompile(`[,\n;，；]`)

func toSkills(v any) []string {
	var parts []string
	switch value := v.(type) {
	case string:
		parts = skillSplitter.Split(value, -1)
	case []any:
		for _, item := range value {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case []string:
		parts = value
	default:
		return nil
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
