package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/mathmaster/internal/llm"
	"github.com/abhisek/mathmaster/internal/quiz"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the schema-validated LLM response.
type questionOutput struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// Generate produces a single question for input.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.UserRequest(systemPrompt, buildUserMessage(input, g.config))
	req.Schema = QuestionSchema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	options := make([]string, len(raw.Options))
	for i, o := range raw.Options {
		options[i] = strings.TrimSpace(o)
	}

	q := &quiz.Question{
		ID:           uuid.NewString(),
		Text:         strings.TrimSpace(raw.Question),
		Options:      options,
		CorrectIndex: raw.CorrectAnswerIndex,
		Explanation:  strings.TrimSpace(raw.Explanation),
		Difficulty:   input.Difficulty,
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("generated question: %w", err)
	}

	return q, nil
}
