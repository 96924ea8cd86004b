package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathmaster/internal/quiz"
)

// Validator checks a generated question before it is handed out.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if q passes.
	Validate(q *quiz.Question, input Input) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxQuestionLen    = 1000
	maxOptionLen      = 200
	maxExplanationLen = 2000
)

// StructuralValidator checks presence, counts and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question, _ Input) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch {
	case strings.TrimSpace(q.Text) == "":
		return fail("question is empty")
	case len(q.Text) > maxQuestionLen:
		return fail(fmt.Sprintf("question exceeds %d characters", maxQuestionLen))
	case len(q.Options) != quiz.NumOptions:
		return fail(fmt.Sprintf("expected %d options, got %d", quiz.NumOptions, len(q.Options)))
	case q.CorrectIndex < 0 || q.CorrectIndex >= quiz.NumOptions:
		return fail(fmt.Sprintf("correctAnswerIndex %d out of range", q.CorrectIndex))
	case strings.TrimSpace(q.Explanation) == "":
		return fail("explanation is empty")
	case len(q.Explanation) > maxExplanationLen:
		return fail(fmt.Sprintf("explanation exceeds %d characters", maxExplanationLen))
	}

	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail(fmt.Sprintf("option %s is empty", quiz.OptionLabel(i)))
		}
		if len(opt) > maxOptionLen {
			return fail(fmt.Sprintf("option %s exceeds %d characters", quiz.OptionLabel(i), maxOptionLen))
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions with duplicate options, which
// would make the correct index ambiguous.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q *quiz.Question, _ Input) *ValidationError {
	seen := make(map[string]int, len(q.Options))
	for i, opt := range q.Options {
		key := strings.ToLower(strings.Join(strings.Fields(opt), " "))
		if j, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("options %s and %s are identical", quiz.OptionLabel(j), quiz.OptionLabel(i)),
				Retryable: true,
			}
		}
		seen[key] = i
	}
	return nil
}
