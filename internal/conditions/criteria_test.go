package conditions

import "testing"

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestCriteriaMatches(t *testing.T) {
	t.Parallel()

	fullCandidate := Candidate{
		Name:     strp("张伟"),
		School:   strp("清华大学"),
		Major:    strp("计算机科学"),
		Degree:   strp("硕士"),
		GradYear: intp(2022),
	}

	tests := []struct {
		name     string
		criteria Criteria
		cand     Candidate
		want     bool
	}{
		{
			name:     "empty criteria matches everything",
			criteria: Criteria{},
			cand:     Candidate{},
			want:     true,
		},
		{
			name:     "name keyword substring match",
			criteria: Criteria{NameKeywords: []string{"伟"}},
			cand:     fullCandidate,
			want:     true,
		},
		{
			name:     "name keyword case insensitive",
			criteria: Criteria{NameKeywords: []string{"SMITH"}},
			cand:     Candidate{Name: strp("John Smith")},
			want:     true,
		},
		{
			name:     "any keyword suffices",
			criteria: Criteria{NameKeywords: []string{"李", "张"}},
			cand:     fullCandidate,
			want:     true,
		},
		{
			name:     "keywords with nil name fail",
			criteria: Criteria{NameKeywords: []string{"张"}},
			cand:     Candidate{},
			want:     false,
		},
		{
			name:     "no keyword hit fails",
			criteria: Criteria{NameKeywords: []string{"王"}},
			cand:     fullCandidate,
			want:     false,
		},
		{
			name:     "school exact membership",
			criteria: Criteria{Schools: []string{"北京大学", "清华大学"}},
			cand:     fullCandidate,
			want:     true,
		},
		{
			name:     "school not in set fails",
			criteria: Criteria{Schools: []string{"北京大学"}},
			cand:     fullCandidate,
			want:     false,
		},
		{
			name:     "school set with nil school fails",
			criteria: Criteria{Schools: []string{"北京大学"}},
			cand:     Candidate{Name: strp("x")},
			want:     false,
		},
		{
			name:     "major and degree membership",
			criteria: Criteria{Majors: []string{"计算机科学"}, Degrees: []string{"硕士", "博士"}},
			cand:     fullCandidate,
			want:     true,
		},
		{
			name:     "grad year inside range",
			criteria: Criteria{GradYearMin: intp(2020), GradYearMax: intp(2024)},
			cand:     fullCandidate,
			want:     true,
		},
		{
			name:     "grad year below minimum fails",
			criteria: Criteria{GradYearMin: intp(2023)},
			cand:     fullCandidate,
			want:     false,
		},
		{
			name:     "grad year above maximum fails",
			criteria: Criteria{GradYearMax: intp(2021)},
			cand:     fullCandidate,
			want:     false,
		},
		{
			name:     "unknown grad year never fails a range",
			criteria: Criteria{GradYearMin: intp(2020), GradYearMax: intp(2024)},
			cand:     Candidate{Name: strp("x")},
			want:     true,
		},
		{
			name: "all clauses together",
			criteria: Criteria{
				NameKeywords: []string{"张"},
				Schools:      []string{"清华大学"},
				Majors:       []string{"计算机科学"},
				Degrees:      []string{"硕士"},
				GradYearMin:  intp(2022),
				GradYearMax:  intp(2022),
			},
			cand: fullCandidate,
			want: true,
		},
		{
			name: "one failing clause fails the condition",
			criteria: Criteria{
				NameKeywords: []string{"张"},
				Degrees:      []string{"博士"},
			},
			cand: fullCandidate,
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.criteria.Matches(tt.cand); got != tt.want {
				t.Fatalf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
