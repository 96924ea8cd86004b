package questiongen

import "github.com/abhisek/mathmaster/internal/llm"

// QuestionSchema is the JSON schema every LLM response must satisfy.
var QuestionSchema = &llm.Schema{
	Name:        "math-question",
	Description: "A single multiple-choice math question with four options and a worked explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the learner",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly four answer options, one of them correct",
			},
			"correctAnswerIndex": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Zero-based index of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Step-by-step solution shown after the learner answers",
			},
		},
		"required":             []any{"question", "options", "correctAnswerIndex", "explanation"},
		"additionalProperties": false,
	},
}
