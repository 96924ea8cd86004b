package arena

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/screen"
	"github.com/abhisek/mathmaster/internal/ui/components"
	"github.com/abhisek/mathmaster/internal/ui/layout"
	"github.com/abhisek/mathmaster/internal/ui/theme"
)

func (s *ArenaScreen) View(width, height int) string {
	snap := s.driver.Snapshot()
	s.syncCursor(snap)

	var b strings.Builder
	b.WriteString(s.renderInfoLine(snap, width))
	b.WriteString("\n")
	if n, ok := s.driver.(screen.NoticeProvider); ok {
		if text := n.Notice(); text != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Render("  " + text))
			b.WriteString("\n")
		}
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch {
	case snap.Round.Loading:
		b.WriteString(s.renderLoading(width))
	case snap.State == lifecycle.StateFailed:
		b.WriteString(renderFailure(snap.Round.Error, width))
	case snap.Round.Question != nil:
		b.WriteString(s.renderQuestion(snap, width))
	}
	return b.String()
}

// renderInfoLine shows "Problem #N" and the grade and topic on the left,
// the difficulty meter on the right.
func (s *ArenaScreen) renderInfoLine(snap lifecycle.Snapshot, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Problem #%d", snap.Session.HistoryLength+1))
	if !layout.IsCompactWidth(width) {
		left += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  ·  %s · %s", snap.Session.Grade.Label(), snap.Session.Topic))
	}

	right := components.NewMeter("Difficulty", snap.Session.Difficulty, quiz.MaxDifficulty).View()

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *ArenaScreen) renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + s.spinner.View() + " Generating question...")
}

func renderFailure(msg string, width int) string {
	if msg == "" {
		msg = "question generation failed"
	}

	var b strings.Builder
	b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Couldn't get a question"))
	b.WriteString("\n\n")

	panel := theme.ErrorPanel.Width(min(width-8, 70)).Render(msg)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, panel))
	b.WriteString("\n\n")

	buttons := components.ButtonRow(
		components.Button{Label: "Try Again", Key: "r", Primary: true},
		components.Button{Label: "Back to Home", Key: "esc"},
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))
	return b.String()
}

func (s *ArenaScreen) renderQuestion(snap lifecycle.Snapshot, width int) string {
	q := snap.Round.Question
	inner := min(width-8, 76)

	var b strings.Builder
	b.WriteString(theme.Question.Width(width).Align(lipgloss.Center).Render(q.Text))
	b.WriteString("\n\n")

	choices := components.Choices{
		Options:  q.Options,
		Cursor:   s.cursor,
		Chosen:   snap.Round.Selected,
		Revealed: snap.Round.FeedbackVisible,
		Correct:  q.CorrectIndex,
	}.View(inner)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.TrimRight(choices, "\n")))
	b.WriteString("\n\n")

	if snap.Round.FeedbackVisible {
		b.WriteString(renderFeedback(snap, inner, width))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.ButtonRow(components.Button{Label: "Continue", Key: "enter", Primary: true})))
		return b.String()
	}

	check := components.Button{Label: "Check Answer", Key: "enter", Primary: snap.Round.HasSelection()}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ButtonRow(check)))
	if !snap.Round.HasSelection() {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Select (1-4 or A-D) or use arrows + Enter"))
	}
	return b.String()
}

func renderFeedback(snap lifecycle.Snapshot, inner, width int) string {
	q := snap.Round.Question

	var body strings.Builder
	panel := theme.IncorrectPanel
	if snap.Round.AnsweredCorrectly() {
		panel = theme.CorrectPanel
		body.WriteString(theme.Correct.Render("Correct!"))
	} else {
		body.WriteString(theme.Incorrect.Render("Not quite"))
		body.WriteString("\n")
		body.WriteString(theme.Faded.Render(fmt.Sprintf("Correct answer: %s) %s",
			quiz.OptionLabel(q.CorrectIndex), q.CorrectOption())))
	}
	if q.Explanation != "" {
		body.WriteString("\n\n")
		body.WriteString(theme.Body.Render(q.Explanation))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, panel.Width(inner).Render(body.String()))
}
