package screening

import (
	"reflect"
	"testing"
)

func TestNormalizePicksFirstPresentKey(t *testing.T) {
	t.Parallel()

	got := Normalize(map[string]any{
		"姓名":   "张伟",
		"毕业院校": "清华大学",
		"专业":   "计算机科学",
		"学历":   "硕士",
		"手机号":  "13800138000",
		"邮箱":   "zhangwei@example.com",
	})

	if got.Name == nil || *got.Name != "张伟" {
		t.Fatalf("name = %v", got.Name)
	}
	if got.School == nil || *got.School != "清华大学" {
		t.Fatalf("school = %v", got.School)
	}
	if got.Major == nil || *got.Major != "计算机科学" {
		t.Fatalf("major = %v", got.Major)
	}
	if got.Degree == nil || *got.Degree != "硕士" {
		t.Fatalf("degree = %v", got.Degree)
	}
	if got.Phone == nil || *got.Phone != "13800138000" {
		t.Fatalf("phone = %v", got.Phone)
	}
	if got.Email == nil || *got.Email != "zhangwei@example.com" {
		t.Fatalf("email = %v", got.Email)
	}
}

func TestNormalizeEnglishKeysWinOverLaterKeys(t *testing.T) {
	t.Parallel()

	got := Normalize(map[string]any{
		"name": "John",
		"姓名":   "约翰",
	})
	if got.Name == nil || *got.Name != "John" {
		t.Fatalf("expected first listed key to win, got %v", got.Name)
	}
}

func TestNormalizeSkipsEmptyAndNullValues(t *testing.T) {
	t.Parallel()

	got := Normalize(map[string]any{
		"name": "   ",
		"姓名":   "张伟",
		"school": nil,
		"毕业院校":   "北大",
	})
	if got.Name == nil || *got.Name != "张伟" {
		t.Fatalf("blank value should not win, got %v", got.Name)
	}
	if got.School == nil || *got.School != "北大" {
		t.Fatalf("null value should not win, got %v", got.School)
	}
}

func TestNormalizeGradYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
		want *int
	}{
		{"json number", float64(2021), intp(2021)},
		{"go int", 1999, intp(1999)},
		{"plain string", "2022", intp(2022)},
		{"free text", "预计2023年6月毕业", intp(2023)},
		{"first run wins", "2019-2023", intp(2019)},
		{"no year run", "应届毕业生", nil},
		{"implausible number", float64(12), nil},
		{"absent", nil, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(map[string]any{"grad_year": tt.raw})
			if (got.GradYear == nil) != (tt.want == nil) {
				t.Fatalf("grad year = %v, want %v", got.GradYear, tt.want)
			}
			if tt.want != nil && *got.GradYear != *tt.want {
				t.Fatalf("grad year = %d, want %d", *got.GradYear, *tt.want)
			}
		})
	}
}

func TestNormalizeSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{
			name: "mixed delimiters",
			raw:  "Go, Python；Java\nSQL;Rust，C++",
			want: []string{"Go", "Python", "Java", "SQL", "Rust", "C++"},
		},
		{
			name: "list value",
			raw:  []any{"Go", " Python ", ""},
			want: []string{"Go", "Python"},
		},
		{
			name: "duplicates preserved",
			raw:  "java, java",
			want: []string{"java", "java"},
		},
		{
			name: "absent defaults to empty",
			raw:  nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(map[string]any{"skills": tt.raw})
			if !reflect.DeepEqual(got.Skills, tt.want) {
				t.Fatalf("skills = %v, want %v", got.Skills, tt.want)
			}
		})
	}
}

func intp(n int) *int { return &n }
