package questiongen

import "context"

// Generator produces quiz questions.
type Generator interface {
	// Generate produces the next question for the session described by
	// input, advancing its conversation and ordinal counter. Parse failures
	// are retried internally; provider failures are returned at once.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}
