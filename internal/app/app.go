package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/questiongen"
	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/screen"
	"github.com/abhisek/mathmaster/internal/screens/arena"
	"github.com/abhisek/mathmaster/internal/screens/setup"
	"github.com/abhisek/mathmaster/internal/screens/summary"
	"github.com/abhisek/mathmaster/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	// Generator produces questions. Required.
	Generator questiongen.Generator

	// Logger receives controller and driver logs. Defaults to a discarding
	// logger, since the UI owns the terminal.
	Logger *slog.Logger

	// Grade and Topic, when both set, skip the setup screen and start a
	// session right away.
	Grade quiz.Grade
	Topic quiz.Topic
}

// AppModel is the root Bubble Tea model. It shows the setup screen while
// no session is running and the arena otherwise. Leaving a session that
// answered at least one question shows its summary first.
type AppModel struct {
	driver  *driver
	active  screen.Screen
	initCmd tea.Cmd
	width   int
	height  int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := AppModel{driver: newDriver(ctx, opts.Generator, logger)}
	if opts.Grade != "" && opts.Topic != "" {
		m.initCmd = m.driver.Start(opts.Grade, opts.Topic)
	}
	if cmd := m.syncScreen(lifecycle.SessionView{}); cmd != nil {
		m.initCmd = tea.Batch(m.initCmd, cmd)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.driver.stop()
			return m, tea.Quit
		}

	case questionFetchedMsg:
		prev := m.driver.Snapshot().Session
		m.driver.resolve(msg.result)
		return m, m.syncScreen(prev)

	case summary.DoneMsg:
		m.active = setup.New(m.driver)
		return m, m.active.Init()
	}

	prev := m.driver.Snapshot().Session
	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, tea.Batch(cmd, m.syncScreen(prev))
}

// syncScreen swaps the active screen when the controller crosses the
// idle boundary and returns the new screen's Init command. prev is the
// session as it was before the message that caused the crossing.
func (m *AppModel) syncScreen(prev lifecycle.SessionView) tea.Cmd {
	idle := m.driver.Snapshot().State == lifecycle.StateIdle

	switch m.active.(type) {
	case *setup.SetupScreen, *summary.SummaryScreen:
		if idle {
			return nil
		}
		m.active = arena.New(m.driver)
	case *arena.ArenaScreen:
		if !idle {
			return nil
		}
		if prev.HistoryLength > 0 {
			m.active = summary.New(prev)
		} else {
			m.active = setup.New(m.driver)
		}
	default:
		if idle {
			m.active = setup.New(m.driver)
		} else {
			m.active = arena.New(m.driver)
		}
	}
	return m.active.Init()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.active.Title(), m.stats(), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := m.active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	content := m.active.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// stats are the header figures for a running session.
func (m AppModel) stats() []layout.Stat {
	snap := m.driver.Snapshot()
	if snap.State == lifecycle.StateIdle {
		return nil
	}
	return []layout.Stat{
		{Label: "Score", Value: fmt.Sprintf("%d", snap.Session.Score)},
		{Label: "Correct", Value: fmt.Sprintf("%d/%d", snap.Session.CorrectCount, snap.Session.HistoryLength)},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Generator == nil {
		return fmt.Errorf("app: no question generator configured")
	}

	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
