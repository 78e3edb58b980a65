package questiongen

import (
	"errors"
	"fmt"
)

var (
	// ErrParseFailure marks generated text that is not a well-formed question.
	// The generator recovers from it by regenerating.
	ErrParseFailure = errors.New("unparseable question")

	// ErrGenerationExhausted is returned once every attempt produced
	// unparseable text.
	ErrGenerationExhausted = errors.New("question generation exhausted")

	// ErrGenerationTimeout is returned when the provider did not answer
	// within the request timeout.
	ErrGenerationTimeout = errors.New("question generation timed out")

	// ErrGenerationFailed wraps any other provider error.
	ErrGenerationFailed = errors.New("question generation failed")
)

// ParseError describes why generated text could not be parsed.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse question: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParseFailure }

// GenerationExhaustedError reports the attempt count and the last parse failure.
type GenerationExhaustedError struct {
	Attempts int
	Last     error
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("no parseable question after %d attempts: %v", e.Attempts, e.Last)
}

func (e *GenerationExhaustedError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrGenerationExhausted}
	}
	return []error{ErrGenerationExhausted, e.Last}
}
