package questiongen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathmaster/internal/quiz"
)

func TestProcedural_ValidAtEveryDifficulty(t *testing.T) {
	gen := NewProcedural(42)
	for d := quiz.MinDifficulty; d <= quiz.MaxDifficulty; d++ {
		for range 25 {
			q, err := gen.Generate(context.Background(), Input{
				Grade:      quiz.Grade3,
				Topic:      quiz.TopicArithmetic,
				Difficulty: d,
			})
			if err != nil {
				t.Fatalf("difficulty %d: %v", d, err)
			}
			if err := q.Validate(); err != nil {
				t.Fatalf("difficulty %d: invalid question: %v", d, err)
			}
			if q.Difficulty != d {
				t.Fatalf("difficulty %d: question carries %d", d, q.Difficulty)
			}
			if verr := (&DistinctOptionsValidator{}).Validate(q, Input{}); verr != nil {
				t.Fatalf("difficulty %d: %v", d, verr)
			}
		}
	}
}

func TestProcedural_Deterministic(t *testing.T) {
	a := NewProcedural(7)
	b := NewProcedural(7)
	in := Input{Grade: quiz.Grade6, Topic: quiz.TopicAlgebra, Difficulty: 5}

	for range 10 {
		qa, _ := a.Generate(context.Background(), in)
		qb, _ := b.Generate(context.Background(), in)
		if qa.Text != qb.Text || qa.CorrectIndex != qb.CorrectIndex {
			t.Fatalf("same seed diverged: %q vs %q", qa.Text, qb.Text)
		}
	}
}

func TestProcedural_RejectsBadDifficulty(t *testing.T) {
	gen := NewProcedural(1)
	if _, err := gen.Generate(context.Background(), Input{Difficulty: 0}); err == nil {
		t.Fatal("expected error for difficulty 0")
	}
	if _, err := gen.Generate(context.Background(), Input{Difficulty: 11}); err == nil {
		t.Fatal("expected error for difficulty 11")
	}
}

func TestProcedural_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProcedural(1).Generate(ctx, Input{Difficulty: 3}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestProcedural_Notice(t *testing.T) {
	gen := NewProcedural(1)
	if n := gen.Notice(quiz.TopicArithmetic); n != "" {
		t.Errorf("arithmetic should have no notice, got %q", n)
	}
	n := Notice(gen, quiz.TopicGeometry)
	if !strings.Contains(n, "Offline mode") || !strings.Contains(n, "Geometry") {
		t.Errorf("unexpected notice %q", n)
	}
	if n := Notice(Unavailable(errors.New("no key")), quiz.TopicGeometry); n != "" {
		t.Errorf("generators without notices should return empty, got %q", n)
	}
}
