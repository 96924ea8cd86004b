// Package arena is the quiz screen. It renders the controller snapshot and
// turns key presses into intents on the driver.
package arena

import (
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/screen"
	"github.com/abhisek/mathmaster/internal/ui/layout"
	"github.com/abhisek/mathmaster/internal/ui/theme"
)

// ArenaScreen shows the current question, feedback or failure.
type ArenaScreen struct {
	driver  screen.Driver
	keys    keyMap
	spinner spinner.Model

	// cursor is the highlighted option; it is UI-only until the learner
	// picks it.
	cursor     int
	questionID string
}

var _ screen.Screen = (*ArenaScreen)(nil)
var _ screen.KeyHintProvider = (*ArenaScreen)(nil)

// New creates the arena for a running session.
func New(driver screen.Driver) *ArenaScreen {
	return &ArenaScreen{
		driver: driver,
		keys:   defaultKeyMap(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (s *ArenaScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s *ArenaScreen) Title() string {
	return "Practice"
}

func (s *ArenaScreen) KeyHints() []layout.KeyHint {
	var bindings []key.Binding
	switch s.driver.Snapshot().State {
	case lifecycle.StateReady, lifecycle.StateSelected:
		bindings = []key.Binding{s.keys.Pick[0], s.keys.Up, s.keys.Check, s.keys.Home}
	case lifecycle.StateFeedback:
		bindings = []key.Binding{s.keys.Continue, s.keys.Home}
	case lifecycle.StateFailed:
		bindings = []key.Binding{s.keys.Retry, s.keys.Home}
	default:
		bindings = []key.Binding{s.keys.Home}
	}

	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

func (s *ArenaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		// The tick chain ends once loading is over; startSpinner restarts it.
		if !s.driver.Snapshot().Round.Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *ArenaScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	snap := s.driver.Snapshot()
	s.syncCursor(snap)

	if key.Matches(msg, s.keys.Home) {
		return s.driver.Abort()
	}

	switch snap.State {
	case lifecycle.StateReady, lifecycle.StateSelected:
		return s.handleAnswerKey(msg, snap)

	case lifecycle.StateFeedback:
		if key.Matches(msg, s.keys.Continue) {
			return s.startSpinner(s.driver.Advance())
		}

	case lifecycle.StateFailed:
		if key.Matches(msg, s.keys.Retry) {
			return s.startSpinner(s.driver.Retry())
		}
	}
	return nil
}

func (s *ArenaScreen) handleAnswerKey(msg tea.KeyMsg, snap lifecycle.Snapshot) tea.Cmd {
	n := len(snap.Round.Question.Options)

	for i, b := range s.keys.Pick {
		if i < n && key.Matches(msg, b) {
			s.cursor = i
			return s.driver.SelectOption(i)
		}
	}

	switch {
	case key.Matches(msg, s.keys.Up):
		s.cursor = (s.cursor - 1 + n) % n
	case key.Matches(msg, s.keys.Down):
		s.cursor = (s.cursor + 1) % n
	case key.Matches(msg, s.keys.Check):
		if snap.State == lifecycle.StateSelected && snap.Round.Selected == s.cursor {
			return s.driver.Confirm()
		}
		return s.driver.SelectOption(s.cursor)
	}
	return nil
}

// startSpinner pairs a fetch command with a spinner tick. A nil fetch
// means the intent was refused, so nothing starts.
func (s *ArenaScreen) startSpinner(fetch tea.Cmd) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return tea.Batch(fetch, s.spinner.Tick)
}

// syncCursor resets the cursor when a new question arrives.
func (s *ArenaScreen) syncCursor(snap lifecycle.Snapshot) {
	q := snap.Round.Question
	if q == nil || q.ID == s.questionID {
		return
	}
	s.questionID = q.ID
	s.cursor = 0
	if snap.Round.HasSelection() {
		s.cursor = snap.Round.Selected
	}
}
