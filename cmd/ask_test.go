package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/questiongen"
	"github.com/abhisek/mathmaster/internal/quiz"
)

// fixedGen fails its first failFirst calls, then returns the same
// question with "42" as the answer.
type fixedGen struct {
	calls     int
	failFirst int
}

func (g *fixedGen) Generate(_ context.Context, in questiongen.Input) (*quiz.Question, error) {
	g.calls++
	if g.calls <= g.failFirst {
		return nil, errors.New("boom")
	}
	return &quiz.Question{
		ID:           fmt.Sprintf("q%d", g.calls),
		Text:         "What is 6 x 7?",
		Options:      []string{"42", "36", "48", "13"},
		CorrectIndex: 0,
		Explanation:  "6 x 7 = 42",
		Difficulty:   in.Difficulty,
	}, nil
}

func playLines(t *testing.T, gen questiongen.Generator, input string, rounds int) (quiz.Session, string) {
	t.Helper()
	var out bytes.Buffer
	lq := &lineQuiz{
		ctrl:   lifecycle.New(),
		gen:    gen,
		in:     bufio.NewScanner(strings.NewReader(input)),
		out:    &out,
		rounds: rounds,
	}
	s, err := lq.run(context.Background(), quiz.Grade4, quiz.TopicArithmetic)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return s, out.String()
}

func TestLineQuiz_RoundLimit(t *testing.T) {
	s, out := playLines(t, &fixedGen{}, "a\nb\nc\n", 2)

	if len(s.History) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(s.History))
	}
	if s.Score != 30 {
		t.Errorf("expected score 30, got %d", s.Score)
	}
	if s.Difficulty != 3 {
		t.Errorf("expected difficulty 3, got %d", s.Difficulty)
	}
	for _, want := range []string{
		"Grade 4 · Arithmetic",
		"Problem #1",
		"Problem #2",
		"Correct!",
		"Not quite. The answer is A) 42",
		"6 x 7 = 42",
		"Questions answered: 2",
		"Final score:        30",
		"Final difficulty:   3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Problem #3") {
		t.Error("quiz should stop after the round limit")
	}
}

func TestLineQuiz_NumbersAndReprompt(t *testing.T) {
	s, out := playLines(t, &fixedGen{}, "x\n\n1\n", 1)

	if !strings.Contains(out, "Please enter A, B, C or D.") {
		t.Error("expected a re-prompt for invalid input")
	}
	if len(s.History) != 1 || !s.History[0].Correct {
		t.Errorf("expected one correct answer, got %+v", s.History)
	}
}

func TestLineQuiz_EndOfInputQuits(t *testing.T) {
	s, out := playLines(t, &fixedGen{}, "", 0)

	if len(s.History) != 0 {
		t.Errorf("expected no answers, got %d", len(s.History))
	}
	if !strings.Contains(out, "Questions answered: 0") {
		t.Error("expected summary")
	}
}

func TestLineQuiz_QuitCommand(t *testing.T) {
	s, _ := playLines(t, &fixedGen{}, "a\nq\n", 0)

	if len(s.History) != 1 {
		t.Errorf("expected 1 answer before quitting, got %d", len(s.History))
	}
	if s.Difficulty != 4 {
		t.Errorf("expected difficulty 4, got %d", s.Difficulty)
	}
}

func TestLineQuiz_RetryAfterFailure(t *testing.T) {
	gen := &fixedGen{failFirst: 1}
	s, out := playLines(t, gen, "\na\n", 1)

	if !strings.Contains(out, "Couldn't get a question: boom") {
		t.Error("expected failure message")
	}
	if gen.calls != 2 {
		t.Errorf("expected 2 generator calls, got %d", gen.calls)
	}
	if len(s.History) != 1 {
		t.Errorf("expected 1 answer after retry, got %d", len(s.History))
	}
}

func TestLineQuiz_DeclineRetry(t *testing.T) {
	gen := &fixedGen{failFirst: 1}
	s, _ := playLines(t, gen, "n\n", 0)

	if gen.calls != 1 {
		t.Errorf("expected no retry, got %d calls", gen.calls)
	}
	if len(s.History) != 0 {
		t.Errorf("expected no answers, got %d", len(s.History))
	}
}

func TestLineQuiz_OfflineGenerator(t *testing.T) {
	s, out := playLines(t, questiongen.NewProcedural(42), "a\na\na\n", 3)

	if len(s.History) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(s.History))
	}
	if !strings.Contains(out, "Questions answered: 3") {
		t.Error("expected summary")
	}
}

func TestLineQuiz_OfflineTopicNotice(t *testing.T) {
	_, out := playLines(t, questiongen.NewProcedural(42), "q\n", 0)
	if strings.Contains(out, "Offline mode") {
		t.Error("arithmetic needs no offline notice")
	}

	var buf bytes.Buffer
	lq := &lineQuiz{
		ctrl: lifecycle.New(),
		gen:  questiongen.NewProcedural(42),
		in:   bufio.NewScanner(strings.NewReader("q\n")),
		out:  &buf,
	}
	if _, err := lq.run(context.Background(), quiz.Grade6, quiz.TopicGeometry); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "Offline mode: Geometry") {
		t.Errorf("expected offline notice, got:\n%s", buf.String())
	}
}
