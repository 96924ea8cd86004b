package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// NoticeProvider is an optional Driver interface for a caveat about the
// running session.
type NoticeProvider interface {
	Notice() string
}

// Driver is how screens read and advance the quiz. Every intent returns
// the command that fetches the next question, or nil when no fetch is
// needed or the intent was not accepted in the current state.
type Driver interface {
	Snapshot() lifecycle.Snapshot

	Start(grade quiz.Grade, topic quiz.Topic) tea.Cmd
	SelectOption(idx int) tea.Cmd
	Confirm() tea.Cmd
	Advance() tea.Cmd
	Retry() tea.Cmd
	Abort() tea.Cmd
}
