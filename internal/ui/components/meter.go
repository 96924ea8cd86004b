package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmaster/internal/ui/theme"
)

// Meter is a segmented bar showing a level out of a maximum, e.g. the
// current difficulty out of 10.
type Meter struct {
	Label string
	Level int
	Max   int
}

// NewMeter creates a meter, clamping level to at most total.
func NewMeter(label string, level, total int) Meter {
	return Meter{Label: label, Level: min(level, total), Max: total}
}

// View renders the meter as "Label ■■■■□□□□□□ 4/10".
func (m Meter) View() string {
	level := max(m.Level, 0)

	filled := lipgloss.NewStyle().
		Foreground(meterColor(level, m.Max)).
		Render(strings.Repeat("■", level))
	empty := lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("□", max(m.Max-level, 0)))

	out := filled + empty + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %d/%d", level, m.Max))
	if m.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  " + out
	}
	return out
}

// meterColor shifts from teal through amber to rose as the level rises.
func meterColor(level, total int) color.Color {
	switch {
	case total <= 0 || level*3 <= total:
		return theme.Secondary
	case level*3 <= total*2:
		return theme.Accent
	default:
		return theme.Error
	}
}
