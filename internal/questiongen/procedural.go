package questiongen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/mathmaster/internal/quiz"
)

// maxDrawAttempts bounds how often Procedural redraws to avoid repeating a
// prior question.
const maxDrawAttempts = 8

// Procedural generates arithmetic questions locally, without a provider.
// Operand size and operation mix scale with difficulty. Grade and topic do
// not influence the output.
type Procedural struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewProcedural returns a generator seeded with seed. The same seed
// produces the same sequence of questions.
func NewProcedural(seed uint64) *Procedural {
	return &Procedural{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *Procedural) Generate(ctx context.Context, input Input) (*quiz.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Difficulty < quiz.MinDifficulty || input.Difficulty > quiz.MaxDifficulty {
		return nil, fmt.Errorf("difficulty %d out of range", input.Difficulty)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var q *quiz.Question
	for range maxDrawAttempts {
		q = p.draw(input.Difficulty)
		if !slices.Contains(input.PriorQuestions, q.Text) {
			break
		}
	}
	return q, nil
}

// Notice flags topics other than arithmetic, which Procedural cannot cover.
func (p *Procedural) Notice(topic quiz.Topic) string {
	if topic == "" || topic == quiz.TopicArithmetic {
		return ""
	}
	return fmt.Sprintf("Offline mode: %s is not available, questions are arithmetic.", topic)
}

func (p *Procedural) draw(difficulty int) *quiz.Question {
	var text, explanation string
	var answer int

	switch {
	case difficulty <= 3:
		limit := 10 * difficulty
		a, b := 1+p.rng.IntN(limit), 1+p.rng.IntN(limit)
		if p.rng.IntN(2) == 0 {
			answer = a + b
			text = fmt.Sprintf("What is %d + %d?", a, b)
			explanation = fmt.Sprintf("Add the numbers: %d + %d = %d.", a, b, answer)
		} else {
			if a < b {
				a, b = b, a
			}
			answer = a - b
			text = fmt.Sprintf("What is %d - %d?", a, b)
			explanation = fmt.Sprintf("Subtract: %d - %d = %d.", a, b, answer)
		}
	case difficulty <= 6:
		limit := 3 * difficulty
		a, b := 2+p.rng.IntN(limit), 2+p.rng.IntN(limit)
		answer = a * b
		text = fmt.Sprintf("What is %d * %d?", a, b)
		explanation = fmt.Sprintf("Multiply: %d * %d = %d.", a, b, answer)
	default:
		limit := 2 * difficulty
		a, b := 2+p.rng.IntN(limit), 2+p.rng.IntN(limit)
		c := 1 + p.rng.IntN(10*difficulty)
		answer = a*b + c
		text = fmt.Sprintf("What is %d * %d + %d?", a, b, c)
		explanation = fmt.Sprintf("Multiply first: %d * %d = %d, then add %d to get %d.", a, b, a*b, c, answer)
	}

	values := p.distractors(answer, difficulty)
	values = append(values, answer)
	p.rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	options := make([]string, len(values))
	correct := 0
	for i, v := range values {
		options[i] = fmt.Sprint(v)
		if v == answer {
			correct = i
		}
	}

	return &quiz.Question{
		ID:           uuid.NewString(),
		Text:         text,
		Options:      options,
		CorrectIndex: correct,
		Explanation:  explanation,
		Difficulty:   difficulty,
	}
}

// distractors returns NumOptions-1 distinct wrong answers near answer.
func (p *Procedural) distractors(answer, difficulty int) []int {
	spread := max(2, difficulty)
	seen := map[int]bool{answer: true}
	out := make([]int, 0, quiz.NumOptions-1)
	for len(out) < quiz.NumOptions-1 {
		delta := 1 + p.rng.IntN(spread)
		if p.rng.IntN(2) == 0 {
			delta = -delta
		}
		v := answer + delta
		if v < 0 || seen[v] {
			spread++
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
