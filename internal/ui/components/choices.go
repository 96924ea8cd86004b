package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/ui/theme"
)

// Choices renders the answer options of a question. It holds no state of
// its own: the caller passes the cursor, the chosen option and whether the
// answer has been revealed.
type Choices struct {
	Options  []string
	Cursor   int
	Chosen   int // -1 when nothing is chosen
	Revealed bool
	Correct  int
}

// View renders one option per line, wrapping long options to width.
func (c Choices) View(width int) string {
	var b strings.Builder
	textWidth := max(width-8, 10)

	for i, opt := range c.Options {
		marker := "  "
		if i == c.Cursor && !c.Revealed {
			marker = "▸ "
		}

		suffix := ""
		style := theme.Unselected
		switch {
		case c.Revealed && i == c.Correct:
			style, suffix = theme.Correct, "  ✓"
		case c.Revealed && i == c.Chosen:
			style, suffix = theme.Incorrect, "  ✗"
		case c.Revealed:
			style = theme.Faded
		case i == c.Chosen:
			style, marker = theme.Chosen, "● "
		case i == c.Cursor:
			style = theme.Cursor
		}

		label := fmt.Sprintf("%s%s) ", marker, quiz.OptionLabel(i))
		body := lipgloss.NewStyle().Width(textWidth).Render(opt + suffix)
		b.WriteString(style.Render(lipgloss.JoinHorizontal(lipgloss.Top, label, body)))
		b.WriteString("\n")
	}
	return b.String()
}
