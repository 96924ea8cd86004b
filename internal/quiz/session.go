// Package quiz holds the adaptive session rules: difficulty progression,
// scoring and the append-only answer history. Everything here is a pure
// value transformation.
package quiz

import (
	"fmt"
	"slices"
)

// Session is the state of one quiz run. Transitions never mutate a Session
// in place; they return a new value.
type Session struct {
	Grade      Grade
	Topic      Topic
	Score      int
	Difficulty int
	History    []AnswerRecord
}

// Reset returns the initial session: no grade or topic, score 0,
// difficulty StartDifficulty and no history.
func Reset() Session {
	return Session{Difficulty: StartDifficulty}
}

// New returns a fresh session for grade and topic.
func New(grade Grade, topic Topic) Session {
	s := Reset()
	s.Grade = grade
	s.Topic = topic
	return s
}

// Started reports whether grade and topic have been chosen.
func (s Session) Started() bool {
	return s.Grade != "" && s.Topic != ""
}

// ApplyAnswer returns the session that follows answering q with option
// selected. A correct answer raises difficulty by one (capped at
// MaxDifficulty) and adds PointsPerLevel times the difficulty the question
// was answered at. A wrong answer lowers difficulty by one (floored at
// MinDifficulty) and leaves the score alone.
//
// The caller guarantees q is the question currently in play. An out-of-range
// selection or a malformed question is a programming error and panics.
func (s Session) ApplyAnswer(q Question, selected int) Session {
	if len(q.Options) != NumOptions || q.CorrectIndex < 0 || q.CorrectIndex >= NumOptions {
		panic(fmt.Sprintf("quiz: malformed question %q", q.ID))
	}
	if selected < 0 || selected >= len(q.Options) {
		panic(fmt.Sprintf("quiz: selected option %d out of range", selected))
	}

	correct := q.IsCorrect(selected)
	next := s
	if correct {
		next.Score = s.Score + s.Difficulty*PointsPerLevel
		next.Difficulty = min(s.Difficulty+1, MaxDifficulty)
	} else {
		next.Difficulty = max(s.Difficulty-1, MinDifficulty)
	}

	// Clip forces append to allocate so the previous session's history
	// is never written through.
	next.History = append(slices.Clip(s.History), AnswerRecord{
		Question: q,
		Selected: selected,
		Correct:  correct,
	})
	return next
}

// CorrectCount returns how many recorded answers were correct.
func (s Session) CorrectCount() int {
	n := 0
	for _, r := range s.History {
		if r.Correct {
			n++
		}
	}
	return n
}

// PriorQuestions returns the text of every question answered so far.
func (s Session) PriorQuestions() []string {
	out := make([]string, 0, len(s.History))
	for _, r := range s.History {
		out = append(out, r.Question.Text)
	}
	return out
}
