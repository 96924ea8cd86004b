// Package lifecycle drives a quiz session round by round: it requests a
// question, tracks selection and feedback, commits answers to the session
// and requests the next question.
//
// A Controller is owned by a single goroutine. Question generation happens
// outside it: the caller runs the Request returned by an intent (see Fetch)
// and hands the outcome back through Resolve. Every request carries a
// sequence number and only the latest one is allowed to change state, so a
// late response after Abort or Retry is dropped.
package lifecycle

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/abhisek/mathmaster/internal/questiongen"
	"github.com/abhisek/mathmaster/internal/quiz"
)

var (
	// ErrInvalidTransition is returned for an intent issued in a state
	// that does not accept it.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrOptionOutOfRange is returned by SelectOption for an index
	// outside [0, quiz.NumOptions).
	ErrOptionOutOfRange = errors.New("option out of range")

	// ErrInvalidSetup is returned by Start for an unknown grade or topic.
	ErrInvalidSetup = errors.New("invalid grade or topic")
)

// NoSelection marks a round without a chosen option.
const NoSelection = -1

// Request is a question request issued by the controller.
type Request struct {
	Seq   uint64
	Input questiongen.Input
}

// Result is the outcome of running a Request.
type Result struct {
	Seq      uint64
	Question *quiz.Question
	Err      error
}

type round struct {
	question *quiz.Question
	loading  bool
	err      string
	selected int
	feedback bool
}

func newRound(loading bool) round {
	return round{loading: loading, selected: NoSelection}
}

// Controller owns the quiz session and the state of the current round.
type Controller struct {
	state   State
	session quiz.Session
	round   round
	seq     uint64
	pending Request
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		state:   StateIdle,
		session: quiz.Reset(),
		round:   newRound(false),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Session returns a copy of the current session.
func (c *Controller) Session() quiz.Session {
	s := c.session
	s.History = slices.Clone(c.session.History)
	return s
}

// Start begins a session for grade and topic and returns the request for
// the first question. Only valid while idle.
func (c *Controller) Start(grade quiz.Grade, topic quiz.Topic) (Request, error) {
	if c.state != StateIdle {
		return Request{}, c.reject("start")
	}
	if !grade.Valid() || !topic.Valid() {
		return Request{}, fmt.Errorf("%w: grade %q, topic %q", ErrInvalidSetup, grade, topic)
	}

	c.session = quiz.New(grade, topic)
	c.logger.Info("session started", "grade", grade, "topic", topic)
	return c.issue(), nil
}

// SelectOption chooses option idx for the shown question. It may be called
// again before Confirm to change the choice.
func (c *Controller) SelectOption(idx int) error {
	if c.state != StateReady && c.state != StateSelected {
		return c.reject("select")
	}
	if idx < 0 || idx >= quiz.NumOptions {
		return fmt.Errorf("%w: %d", ErrOptionOutOfRange, idx)
	}
	c.round.selected = idx
	c.moveTo(StateSelected)
	return nil
}

// Confirm reveals whether the selected option is correct. The session is
// not touched until Advance.
func (c *Controller) Confirm() error {
	if c.state != StateSelected {
		return c.reject("confirm")
	}
	c.round.feedback = true
	c.moveTo(StateFeedback)
	return nil
}

// Advance commits the confirmed answer to the session and returns the
// request for the next question at the updated difficulty.
func (c *Controller) Advance() (Request, error) {
	if c.state != StateFeedback {
		return Request{}, c.reject("advance")
	}
	c.session = c.session.ApplyAnswer(*c.round.question, c.round.selected)
	c.logger.Debug("answer applied",
		"score", c.session.Score,
		"difficulty", c.session.Difficulty,
		"answered", len(c.session.History),
	)
	return c.issue(), nil
}

// Retry re-issues the request that failed, with the same grade, topic and
// difficulty. Only valid after a failure.
func (c *Controller) Retry() (Request, error) {
	if c.state != StateFailed {
		return Request{}, c.reject("retry")
	}
	c.seq++
	c.pending.Seq = c.seq
	c.round = newRound(true)
	c.moveTo(StateLoading)
	return c.pending, nil
}

// Abort discards the session and returns to idle. Any outstanding
// request is superseded and its result will be ignored.
func (c *Controller) Abort() {
	c.seq++
	c.session = quiz.Reset()
	c.round = newRound(false)
	c.pending = Request{}
	c.moveTo(StateIdle)
}

// Resolve applies the outcome of a request. It reports false when the
// result was discarded because it belongs to a superseded request or the
// controller is no longer loading.
func (c *Controller) Resolve(res Result) bool {
	if c.state != StateLoading || res.Seq != c.seq {
		c.logger.Debug("discarding stale result", "seq", res.Seq, "current", c.seq, "state", c.state)
		return false
	}

	err := res.Err
	if err == nil && res.Question == nil {
		err = errors.New("generator returned no question")
	}
	if err == nil {
		if verr := res.Question.Validate(); verr != nil {
			err = fmt.Errorf("invalid question: %w", verr)
		}
	}

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "question generation failed"
		}
		c.logger.Warn("question request failed", "seq", res.Seq, "error", msg)
		c.round = newRound(false)
		c.round.err = msg
		c.moveTo(StateFailed)
		return true
	}

	q := *res.Question
	q.Options = slices.Clone(q.Options)
	c.round = newRound(false)
	c.round.question = &q
	c.moveTo(StateReady)
	return true
}

func (c *Controller) issue() Request {
	c.seq++
	c.pending = Request{
		Seq: c.seq,
		Input: questiongen.Input{
			Grade:          c.session.Grade,
			Topic:          c.session.Topic,
			Difficulty:     c.session.Difficulty,
			PriorQuestions: c.session.PriorQuestions(),
		},
	}
	c.round = newRound(true)
	c.moveTo(StateLoading)
	return c.pending
}

func (c *Controller) moveTo(s State) {
	if c.state != s {
		c.logger.Debug("transition", "from", c.state, "to", s, "seq", c.seq)
	}
	c.state = s
}

func (c *Controller) reject(intent string) error {
	c.logger.Debug("intent rejected", "intent", intent, "state", c.state)
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, intent, c.state)
}
