package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a math teacher writing adaptive multiple-choice practice questions.

Rules:
- Generate exactly one question for the given grade level, topic and difficulty.
- Difficulty is on a scale of 1 to 10: 1 is basic for the grade, 10 is very advanced for the grade.
- Provide exactly 4 options. Exactly one option is correct. Distractors should reflect common mistakes.
- correctAnswerIndex is the zero-based position of the correct option.
- Options must be distinct.
- The explanation should walk through the solution step by step.
- Use plain text for math. Avoid LaTeX.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message for one question request.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Grade: %s\n", input.Grade.Label())
	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Difficulty: %d/10\n", input.Difficulty)

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}

// buildDedup formats prior questions for the prompt, keeping the most
// recent max. Returns "None" if there are none.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
