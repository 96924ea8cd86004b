package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmaster/internal/ui/theme"
)

// Button is a styled action label. Primary buttons are filled, others are
// outlined.
type Button struct {
	Label   string
	Key     string
	Primary bool
}

// View renders the button, prefixed with its key when set.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	if b.Primary {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow lays buttons out side by side, vertically centred.
func ButtonRow(buttons ...Button) string {
	views := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
