package app

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/questiongen"
	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/screens/arena"
	"github.com/abhisek/mathmaster/internal/screens/setup"
	"github.com/abhisek/mathmaster/internal/screens/summary"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestModel(t *testing.T, gen questiongen.Generator) AppModel {
	t.Helper()
	return newAppModel(context.Background(), Options{Generator: gen})
}

// deliver runs a fetch command and feeds its result back into the model.
func deliver(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	msg, ok := cmd().(questionFetchedMsg)
	if !ok {
		t.Fatal("expected questionFetchedMsg")
	}
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func update(m AppModel, msg tea.Msg) AppModel {
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func TestStartsOnSetupScreen(t *testing.T) {
	m := newTestModel(t, questiongen.NewProcedural(1))

	if _, ok := m.active.(*setup.SetupScreen); !ok {
		t.Fatalf("expected setup screen, got %T", m.active)
	}
	if m.Init() != nil {
		t.Error("expected no init command without a preset session")
	}
}

func TestPresetSessionStartsInArena(t *testing.T) {
	m := newAppModel(context.Background(), Options{
		Generator: questiongen.NewProcedural(1),
		Grade:     quiz.Grade5,
		Topic:     quiz.TopicArithmetic,
	})

	if _, ok := m.active.(*arena.ArenaScreen); !ok {
		t.Fatalf("expected arena screen, got %T", m.active)
	}
	if got := m.driver.Snapshot().State; got != lifecycle.StateLoading {
		t.Errorf("expected loading, got %v", got)
	}
	if m.Init() == nil {
		t.Error("expected init command to fetch the first question")
	}
}

func TestFetchedQuestionIsShown(t *testing.T) {
	m := newTestModel(t, questiongen.NewProcedural(7))

	m = deliver(t, m, m.driver.Start(quiz.Grade3, quiz.TopicArithmetic))

	if _, ok := m.active.(*arena.ArenaScreen); !ok {
		t.Fatalf("expected arena screen, got %T", m.active)
	}
	snap := m.driver.Snapshot()
	if snap.State != lifecycle.StateReady {
		t.Fatalf("expected ready, got %v", snap.State)
	}
	if snap.Round.Question == nil || snap.Round.Question.Difficulty != quiz.StartDifficulty {
		t.Errorf("unexpected question: %+v", snap.Round.Question)
	}
}

func TestFullRoundThroughKeys(t *testing.T) {
	m := newTestModel(t, questiongen.NewProcedural(7))
	m = deliver(t, m, m.driver.Start(quiz.Grade3, quiz.TopicArithmetic))

	correct := m.driver.Snapshot().Round.Question.CorrectIndex
	m = update(m, keyPress(rune('1'+correct)))
	m = update(m, specialKey(tea.KeyEnter))
	if got := m.driver.Snapshot().State; got != lifecycle.StateFeedback {
		t.Fatalf("expected feedback, got %v", got)
	}

	next, cmd := m.Update(specialKey(tea.KeyEnter))
	m = next.(AppModel)
	snap := m.driver.Snapshot()
	if snap.State != lifecycle.StateLoading {
		t.Fatalf("expected loading, got %v", snap.State)
	}
	if snap.Session.Score != 30 || snap.Session.Difficulty != 4 {
		t.Errorf("unexpected session after correct answer: %+v", snap.Session)
	}
	if cmd == nil {
		t.Fatal("expected a command from advancing")
	}
}

func TestEscReturnsToSetup(t *testing.T) {
	m := newTestModel(t, questiongen.NewProcedural(7))
	m = deliver(t, m, m.driver.Start(quiz.Grade3, quiz.TopicArithmetic))

	m = update(m, specialKey(tea.KeyEscape))

	if _, ok := m.active.(*setup.SetupScreen); !ok {
		t.Fatalf("expected setup screen, got %T", m.active)
	}
	if got := m.driver.Snapshot().State; got != lifecycle.StateIdle {
		t.Errorf("expected idle, got %v", got)
	}
}

func TestLeavingAnsweredSessionShowsSummary(t *testing.T) {
	m := newTestModel(t, questiongen.NewProcedural(7))
	m = deliver(t, m, m.driver.Start(quiz.Grade3, quiz.TopicArithmetic))

	correct := m.driver.Snapshot().Round.Question.CorrectIndex
	m = update(m, keyPress(rune('1'+correct)))
	m = update(m, specialKey(tea.KeyEnter))
	next, cmd := m.Update(specialKey(tea.KeyEnter))
	m = next.(AppModel)
	if cmd == nil {
		t.Fatal("expected advance to fetch")
	}

	m = update(m, specialKey(tea.KeyEscape))
	sum, ok := m.active.(*summary.SummaryScreen)
	if !ok {
		t.Fatalf("expected summary screen, got %T", m.active)
	}
	if got := m.driver.Snapshot().State; got != lifecycle.StateIdle {
		t.Errorf("expected idle, got %v", got)
	}

	_, done := sum.Update(specialKey(tea.KeyEnter))
	m = update(m, done())
	if _, ok := m.active.(*setup.SetupScreen); !ok {
		t.Fatalf("expected setup screen, got %T", m.active)
	}
}

func TestResultAfterAbortIsDiscarded(t *testing.T) {
	m := newTestModel(t, questiongen.NewProcedural(7))

	cmd := m.driver.Start(quiz.Grade3, quiz.TopicArithmetic)
	m.syncScreen(lifecycle.SessionView{})
	m = update(m, specialKey(tea.KeyEscape))
	m = deliver(t, m, cmd)

	if got := m.driver.Snapshot().State; got != lifecycle.StateIdle {
		t.Errorf("expected idle, got %v", got)
	}
	if _, ok := m.active.(*setup.SetupScreen); !ok {
		t.Errorf("expected setup screen, got %T", m.active)
	}
}

func TestUnavailableGeneratorFailsWithRetry(t *testing.T) {
	m := newTestModel(t, questiongen.Unavailable(errors.New("API_KEY is missing")))
	m = deliver(t, m, m.driver.Start(quiz.Grade7, quiz.TopicAlgebra))

	snap := m.driver.Snapshot()
	if snap.State != lifecycle.StateFailed {
		t.Fatalf("expected failed, got %v", snap.State)
	}
	if snap.Round.Error != "API_KEY is missing" {
		t.Errorf("unexpected error %q", snap.Round.Error)
	}

	next, cmd := m.Update(keyPress('r'))
	m = next.(AppModel)
	if cmd == nil {
		t.Fatal("expected retry to fetch")
	}
	if got := m.driver.Snapshot().State; got != lifecycle.StateLoading {
		t.Errorf("expected loading, got %v", got)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, questiongen.NewProcedural(1))

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestStatsOnlyDuringSession(t *testing.T) {
	m := newTestModel(t, questiongen.NewProcedural(1))
	if len(m.stats()) != 0 {
		t.Error("expected no stats while idle")
	}

	m = deliver(t, m, m.driver.Start(quiz.Grade3, quiz.TopicArithmetic))
	stats := m.stats()
	if len(stats) != 2 || stats[0].Value != "0" || stats[1].Value != "0/0" {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestRunRequiresGenerator(t *testing.T) {
	if err := Run(context.Background(), Options{}); err == nil {
		t.Error("expected error without a generator")
	}
}
