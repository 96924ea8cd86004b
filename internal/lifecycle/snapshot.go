package lifecycle

import (
	"context"
	"slices"

	"github.com/abhisek/mathmaster/internal/questiongen"
	"github.com/abhisek/mathmaster/internal/quiz"
)

// Snapshot is a read-only view of the controller for presentation.
type Snapshot struct {
	State   State
	Session SessionView
	Round   RoundView
}

// SessionView summarises the session.
type SessionView struct {
	Grade         quiz.Grade
	Topic         quiz.Topic
	Score         int
	Difficulty    int
	HistoryLength int
	CorrectCount  int
}

// RoundView describes the current round. Question is nil while loading or
// after a failure; Error is set only after a failure.
type RoundView struct {
	Question        *quiz.Question
	Loading         bool
	Error           string
	Selected        int
	FeedbackVisible bool
}

// HasSelection reports whether an option is chosen.
func (r RoundView) HasSelection() bool {
	return r.Selected != NoSelection
}

// AnsweredCorrectly reports whether the selected option is the right one.
// Only meaningful once feedback is visible.
func (r RoundView) AnsweredCorrectly() bool {
	return r.Question != nil && r.HasSelection() && r.Question.IsCorrect(r.Selected)
}

// Snapshot returns a copy of the controller's observable state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State: c.state,
		Session: SessionView{
			Grade:         c.session.Grade,
			Topic:         c.session.Topic,
			Score:         c.session.Score,
			Difficulty:    c.session.Difficulty,
			HistoryLength: len(c.session.History),
			CorrectCount:  c.session.CorrectCount(),
		},
		Round: RoundView{
			Loading:         c.round.loading,
			Error:           c.round.err,
			Selected:        c.round.selected,
			FeedbackVisible: c.round.feedback,
		},
	}
	if c.round.question != nil {
		q := *c.round.question
		q.Options = slices.Clone(q.Options)
		snap.Round.Question = &q
	}
	return snap
}

// Fetch runs req against gen and packages the outcome for Resolve.
func Fetch(ctx context.Context, gen questiongen.Generator, req Request) Result {
	q, err := gen.Generate(ctx, req.Input)
	return Result{Seq: req.Seq, Question: q, Err: err}
}
