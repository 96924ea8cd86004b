package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// mathQuestionSchema mirrors the shape the question generator asks for.
var mathQuestionSchema = &Schema{
	Name:        "math-question",
	Description: "A multiple-choice math question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctAnswerIndex": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
			"explanation":        map[string]any{"type": "string"},
		},
		"required":             []string{"question", "options", "correctAnswerIndex", "explanation"},
		"additionalProperties": false,
	},
}

const validQuestionJSON = `{"question":"What is 7 x 8?","options":["54","56","58","64"],"correctAnswerIndex":1,"explanation":"7 x 8 = 56."}`

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", validQuestionJSON, false},
		{"three options", `{"question":"2+2?","options":["3","4","5"],"correctAnswerIndex":1,"explanation":""}`, true},
		{"index out of range", `{"question":"2+2?","options":["3","4","5","6"],"correctAnswerIndex":4,"explanation":""}`, true},
		{"index as string", `{"question":"2+2?","options":["3","4","5","6"],"correctAnswerIndex":"1","explanation":""}`, true},
		{"missing explanation", `{"question":"2+2?","options":["3","4","5","6"],"correctAnswerIndex":1}`, true},
		{"extra field", `{"question":"2+2?","options":["3","4","5","6"],"correctAnswerIndex":1,"explanation":"","hint":"count"}`, true},
		{"empty question", `{"question":"","options":["3","4","5","6"],"correctAnswerIndex":1,"explanation":""}`, true},
		{"not json", `{question: 2+2}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponse(mathQuestionSchema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *ErrInvalidResponse, got %T", err)
			}
			if string(invalid.Content) != tt.raw {
				t.Errorf("Content = %q, want the raw response", invalid.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsText(t *testing.T) {
	if err := ValidateResponse(nil, json.RawMessage(`The answer is 56.`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_NamesSchemaOnMismatch(t *testing.T) {
	err := ValidateResponse(mathQuestionSchema, json.RawMessage(`{"question":"2+2?"}`))
	if err == nil || !strings.Contains(err.Error(), "math-question") {
		t.Fatalf("error %v should name the schema", err)
	}
}

func TestValidateResponse_BadSchemaIsReported(t *testing.T) {
	broken := &Schema{
		Name:       "broken",
		Definition: map[string]any{"type": 42},
	}
	err := ValidateResponse(broken, json.RawMessage(`{}`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidResponse, got %v", err)
	}
}

func TestCompile_CachesPerSchema(t *testing.T) {
	a, err := compile(mathQuestionSchema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := compile(mathQuestionSchema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a != b {
		t.Error("expected the cached compiled schema to be reused")
	}
}
