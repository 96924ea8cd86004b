package quiz

import (
	"errors"
	"fmt"
)

const (
	// NumOptions is the number of answer options every question carries.
	NumOptions = 4

	MinDifficulty   = 1
	MaxDifficulty   = 10
	StartDifficulty = 3

	// PointsPerLevel is the reward per difficulty level for a correct answer.
	PointsPerLevel = 10
)

// Question is a single multiple-choice question. Treat it as immutable once
// built.
type Question struct {
	// ID is unique per fetch.
	ID string

	// Text is the prompt shown to the learner.
	Text string

	// Options holds exactly NumOptions answer strings.
	Options []string

	// CorrectIndex is the index into Options of the right answer.
	CorrectIndex int

	// Explanation is the worked solution revealed after confirming.
	Explanation string

	// Difficulty is the level the question was requested at (1-10).
	Difficulty int
}

// Validate checks the shape invariants of a question.
func (q Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) != NumOptions {
		return fmt.Errorf("question has %d options, want %d", len(q.Options), NumOptions)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range [0, %d)", q.CorrectIndex, len(q.Options))
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty %d out of range [%d, %d]", q.Difficulty, MinDifficulty, MaxDifficulty)
	}
	return nil
}

// IsCorrect reports whether idx is the correct option.
func (q Question) IsCorrect(idx int) bool {
	return idx == q.CorrectIndex
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// OptionLabel returns the letter shown next to option idx ("A".."D").
func OptionLabel(idx int) string {
	return string(rune('A' + idx))
}

// AnswerRecord is one completed round.
type AnswerRecord struct {
	Question Question
	Selected int
	Correct  bool
}
