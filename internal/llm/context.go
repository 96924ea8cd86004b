package llm

import "context"

// PurposeQuestionGen labels requests that produce quiz questions.
const PurposeQuestionGen = "question-gen"

const purposeUnknown = "unknown"

type purposeKey struct{}

// WithPurpose tags ctx so the request log can group calls by what they
// were made for.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return purposeUnknown
}
