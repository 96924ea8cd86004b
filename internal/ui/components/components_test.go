package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenu_WrapsAndRuns(t *testing.T) {
	var ran string
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd {
			ran = label
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("Arithmetic"), item("Algebra"), item("Geometry")})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Fatalf("up from the first item should wrap to the last, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Fatalf("down from the last item should wrap to the first, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: 'G', Text: "G"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "Geometry" {
		t.Fatalf("expected Geometry to run, got %q", ran)
	}
}

func TestMenu_Empty(t *testing.T) {
	m := NewMenu(nil)
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Fatal("empty menu should ignore enter")
	}
}

func TestMeter(t *testing.T) {
	view := NewMeter("Difficulty", 4, 10).View()
	if !strings.Contains(view, "Difficulty") || !strings.Contains(view, "4/10") {
		t.Fatalf("unexpected meter %q", view)
	}
	if strings.Count(view, "■") != 4 || strings.Count(view, "□") != 6 {
		t.Fatalf("expected 4 filled and 6 empty segments: %q", view)
	}
	if over := NewMeter("", 12, 10); over.Level != 10 {
		t.Fatalf("level should clamp to the maximum, got %d", over.Level)
	}
}

func TestChoices_Reveal(t *testing.T) {
	c := Choices{Options: []string{"40", "42", "44", "48"}, Cursor: 0, Chosen: 3, Correct: 1}

	before := c.View(60)
	if strings.Contains(before, "✓") || !strings.Contains(before, "● D) ") {
		t.Fatalf("unrevealed view should only mark the choice:\n%s", before)
	}

	c.Revealed = true
	after := c.View(60)
	if !strings.Contains(after, "42  ✓") || !strings.Contains(after, "48  ✗") {
		t.Fatalf("revealed view should mark right and wrong:\n%s", after)
	}
}

func TestButtonRow(t *testing.T) {
	row := ButtonRow(Button{Label: "Try Again", Key: "r", Primary: true}, Button{Label: "Back to Home", Key: "esc"})
	if !strings.Contains(row, "[r] Try Again") || !strings.Contains(row, "[esc] Back to Home") {
		t.Fatalf("unexpected row %q", row)
	}
}
