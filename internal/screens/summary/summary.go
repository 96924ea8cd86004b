package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/screen"
	"github.com/abhisek/mathmaster/internal/ui/components"
	"github.com/abhisek/mathmaster/internal/ui/layout"
	"github.com/abhisek/mathmaster/internal/ui/theme"
)

// DoneMsg is sent when the learner dismisses the summary.
type DoneMsg struct{}

// SummaryScreen shows the totals of a session that just ended.
type SummaryScreen struct {
	session lifecycle.SessionView
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary of the given session.
func New(session lifecycle.SessionView) *SummaryScreen {
	return &SummaryScreen{session: session}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "New session"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "space":
			return s, func() tea.Msg { return DoneMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.session
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("%s · %s", sum.Grade.Label(), sum.Topic)))
	b.WriteString("\n\n")

	accuracy := 0
	if sum.HistoryLength > 0 {
		accuracy = sum.CorrectCount * 100 / sum.HistoryLength
	}
	rows := []struct{ label, value string }{
		{"Questions", fmt.Sprintf("%d", sum.HistoryLength)},
		{"Correct", fmt.Sprintf("%d (%d%%)", sum.CorrectCount, accuracy)},
		{"Final score", fmt.Sprintf("%d", sum.Score)},
	}

	var card strings.Builder
	for _, r := range rows {
		card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(14).Render(r.label))
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(r.value))
		card.WriteString("\n")
	}
	card.WriteString("\n")
	card.WriteString(components.NewMeter("Difficulty", sum.Difficulty, quiz.MaxDifficulty).View())

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Width(min(width-8, 48)).Render(card.String())))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render(encouragement(sum)))

	return b.String()
}

func encouragement(sum lifecycle.SessionView) string {
	switch {
	case sum.HistoryLength == 0:
		return "See you next time."
	case sum.CorrectCount*4 >= sum.HistoryLength*3:
		return "Great work! You're ready for harder problems."
	case sum.CorrectCount*2 >= sum.HistoryLength:
		return "Nice progress. Keep practising."
	default:
		return "Every mistake is practice. Try another round."
	}
}
