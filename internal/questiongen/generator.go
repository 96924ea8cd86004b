// Package questiongen produces multiple-choice questions for a grade, topic
// and difficulty. The LLM-backed generator validates every response against
// a JSON schema and a validator chain before a quiz.Question is built, so a
// caller either gets a well-formed question or an error.
package questiongen

import (
	"context"

	"github.com/abhisek/mathmaster/internal/quiz"
)

// Generator produces one question per call.
type Generator interface {
	// Generate returns a question satisfying quiz.Question.Validate, or an
	// error describing why none could be produced.
	Generate(ctx context.Context, input Input) (*quiz.Question, error)
}

// Input is everything a generator needs for one question. It is a plain
// value so the same request can be issued again on retry.
type Input struct {
	Grade      quiz.Grade
	Topic      quiz.Topic
	Difficulty int

	// PriorQuestions holds the text of questions already asked in this
	// session, oldest first. Used to steer away from repeats.
	PriorQuestions []string
}

// Noticer is implemented by generators that have a caveat the learner
// should see for a topic, such as not covering it.
type Noticer interface {
	Notice(topic quiz.Topic) string
}

// Notice returns gen's caveat for topic, or "" when it has none.
func Notice(gen Generator, topic quiz.Topic) string {
	if n, ok := gen.(Noticer); ok {
		return n.Notice(topic)
	}
	return ""
}

type unavailable struct {
	err error
}

// Unavailable returns a Generator that fails every call with err. It stands
// in when no provider could be configured, so the failure surfaces in the
// quiz as a retryable error instead of at startup.
func Unavailable(err error) Generator {
	return unavailable{err: err}
}

func (u unavailable) Generate(context.Context, Input) (*quiz.Question, error) {
	return nil, u.err
}
