package quiz

import (
	"fmt"
	"strings"
)

// Grade is the learner's level.
type Grade string

const (
	Grade1          Grade = "1"
	Grade2          Grade = "2"
	Grade3          Grade = "3"
	Grade4          Grade = "4"
	Grade5          Grade = "5"
	Grade6          Grade = "6"
	Grade7          Grade = "7"
	Grade8          Grade = "8"
	GradeHighSchool Grade = "High School"
	GradeCollege    Grade = "College"
)

var allGrades = []Grade{
	Grade1, Grade2, Grade3, Grade4, Grade5, Grade6, Grade7, Grade8,
	GradeHighSchool, GradeCollege,
}

// Grades returns every grade in display order.
func Grades() []Grade {
	out := make([]Grade, len(allGrades))
	copy(out, allGrades)
	return out
}

// Valid reports whether g is one of the known grades.
func (g Grade) Valid() bool {
	for _, v := range allGrades {
		if g == v {
			return true
		}
	}
	return false
}

// Label is the human-readable form, e.g. "Grade 4" or "College".
func (g Grade) Label() string {
	if len(g) == 1 {
		return "Grade " + string(g)
	}
	return string(g)
}

// ParseGrade accepts "4", "grade 4", "high school", "high-school", "hs",
// "college" and similar spellings.
func ParseGrade(s string) (Grade, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "grade")
	norm = strings.TrimSpace(norm)
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)

	switch norm {
	case "high school", "highschool", "hs":
		return GradeHighSchool, nil
	case "college", "university":
		return GradeCollege, nil
	}
	for _, g := range allGrades {
		if norm == string(g) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown grade %q", s)
}
