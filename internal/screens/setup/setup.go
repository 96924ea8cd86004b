// Package setup is the session setup screen: the learner picks a grade
// and then a topic, and the quiz starts.
package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/screen"
	"github.com/abhisek/mathmaster/internal/ui/components"
	"github.com/abhisek/mathmaster/internal/ui/layout"
	"github.com/abhisek/mathmaster/internal/ui/theme"
)

type step int

const (
	stepGrade step = iota
	stepTopic
)

type gradeChosenMsg struct{ grade quiz.Grade }

type topicChosenMsg struct{ topic quiz.Topic }

// SetupScreen walks the learner through grade and topic selection.
type SetupScreen struct {
	driver screen.Driver
	step   step
	grade  quiz.Grade
	grades components.Menu
	topics components.Menu
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen that starts sessions through driver.
func New(driver screen.Driver) *SetupScreen {
	var gradeItems []components.MenuItem
	for _, g := range quiz.Grades() {
		gradeItems = append(gradeItems, components.MenuItem{
			Label: g.Label(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return gradeChosenMsg{grade: g} }
			},
		})
	}

	var topicItems []components.MenuItem
	for _, t := range quiz.Topics() {
		topicItems = append(topicItems, components.MenuItem{
			Label: string(t),
			Action: func() tea.Cmd {
				return func() tea.Msg { return topicChosenMsg{topic: t} }
			},
		})
	}

	return &SetupScreen{
		driver: driver,
		grades: components.NewMenu(gradeItems),
		topics: components.NewMenu(topicItems),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Session"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if s.step == stepTopic {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Change grade"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradeChosenMsg:
		s.grade = msg.grade
		s.step = stepTopic
		return s, nil

	case topicChosenMsg:
		return s, s.driver.Start(s.grade, msg.topic)

	case tea.KeyMsg:
		if s.step == stepTopic && msg.String() == "esc" {
			s.step = stepGrade
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.step == stepGrade {
		s.grades, cmd = s.grades.Update(msg)
	} else {
		s.topics, cmd = s.topics.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Adaptive Math Practice"))
	b.WriteString("\n")

	var prompt, menu string
	if s.step == stepGrade {
		prompt = "Choose your grade"
		menu = s.grades.View()
	} else {
		prompt = s.grade.Label() + "  ·  Choose a topic"
		menu = s.topics.View()
	}
	b.WriteString(theme.Subtitle.Width(width).Render(prompt))
	b.WriteString("\n\n")

	card := theme.Card.Width(min(44, width-4)).Render(strings.TrimRight(menu, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
		Render("Questions start at difficulty 3 and adapt to your answers."))

	return b.String()
}
