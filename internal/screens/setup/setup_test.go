package setup

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/quiz"
)

type startCall struct {
	grade quiz.Grade
	topic quiz.Topic
}

// fakeDriver records Start calls and ignores every other intent.
type fakeDriver struct {
	starts []startCall
}

type startedMsg struct{}

func (d *fakeDriver) Snapshot() lifecycle.Snapshot { return lifecycle.Snapshot{} }
func (d *fakeDriver) Start(g quiz.Grade, t quiz.Topic) tea.Cmd {
	d.starts = append(d.starts, startCall{g, t})
	return func() tea.Msg { return startedMsg{} }
}
func (d *fakeDriver) SelectOption(int) tea.Cmd { return nil }
func (d *fakeDriver) Confirm() tea.Cmd         { return nil }
func (d *fakeDriver) Advance() tea.Cmd         { return nil }
func (d *fakeDriver) Retry() tea.Cmd           { return nil }
func (d *fakeDriver) Abort() tea.Cmd           { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// press sends msg and feeds any resulting message back into the screen,
// the way the program loop would.
func press(s *SetupScreen, msg tea.Msg) tea.Cmd {
	_, cmd := s.Update(msg)
	if cmd == nil {
		return nil
	}
	out := cmd()
	switch out.(type) {
	case gradeChosenMsg, topicChosenMsg:
		_, cmd = s.Update(out)
		return cmd
	}
	return cmd
}

func TestStartsAtGradeStep(t *testing.T) {
	s := New(&fakeDriver{})

	if s.step != stepGrade {
		t.Fatalf("expected grade step, got %v", s.step)
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "Choose your grade") {
		t.Error("expected grade prompt in view")
	}
	if !strings.Contains(view, "Grade 1") || !strings.Contains(view, "College") {
		t.Error("expected every grade listed")
	}
}

func TestChoosingGradeThenTopicStartsSession(t *testing.T) {
	d := &fakeDriver{}
	s := New(d)

	// Grade 1 -> Grade 3
	press(s, keyPress('j'))
	press(s, keyPress('j'))
	press(s, specialKey(tea.KeyEnter))

	if s.step != stepTopic {
		t.Fatalf("expected topic step, got %v", s.step)
	}
	if s.grade != quiz.Grade3 {
		t.Fatalf("expected grade 3, got %q", s.grade)
	}
	if !strings.Contains(s.View(80, 24), "Grade 3") {
		t.Error("expected chosen grade in topic prompt")
	}

	// Arithmetic -> Algebra
	press(s, specialKey(tea.KeyDown))
	cmd := press(s, specialKey(tea.KeyEnter))

	if len(d.starts) != 1 {
		t.Fatalf("expected 1 start, got %d", len(d.starts))
	}
	if d.starts[0] != (startCall{quiz.Grade3, quiz.TopicAlgebra}) {
		t.Errorf("unexpected start: %+v", d.starts[0])
	}
	if cmd == nil {
		t.Fatal("expected the driver's command to be returned")
	}
	if _, ok := cmd().(startedMsg); !ok {
		t.Error("expected startedMsg from the driver command")
	}
}

func TestEscReturnsToGradeStep(t *testing.T) {
	d := &fakeDriver{}
	s := New(d)

	press(s, specialKey(tea.KeyEnter))
	if s.step != stepTopic {
		t.Fatalf("expected topic step, got %v", s.step)
	}

	press(s, specialKey(tea.KeyEscape))
	if s.step != stepGrade {
		t.Fatalf("expected grade step after esc, got %v", s.step)
	}
	if len(d.starts) != 0 {
		t.Errorf("expected no start, got %d", len(d.starts))
	}
}

func TestEscOnGradeStepIsIgnored(t *testing.T) {
	s := New(&fakeDriver{})
	if cmd := press(s, specialKey(tea.KeyEscape)); cmd != nil {
		t.Error("expected no command")
	}
	if s.step != stepGrade {
		t.Errorf("expected grade step, got %v", s.step)
	}
}

func TestKeyHintsDependOnStep(t *testing.T) {
	s := New(&fakeDriver{})

	hasEsc := func() bool {
		for _, h := range s.KeyHints() {
			if h.Key == "Esc" {
				return true
			}
		}
		return false
	}

	if hasEsc() {
		t.Error("grade step should not offer Esc")
	}
	press(s, specialKey(tea.KeyEnter))
	if !hasEsc() {
		t.Error("topic step should offer Esc")
	}
}
