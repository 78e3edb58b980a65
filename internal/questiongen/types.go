package questiongen

import (
	"strings"

	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

// Question is a parsed question ready for display.
type Question struct {
	// Prompt is the question line with any "Question:" label removed.
	Prompt string

	// Options are the option lines as generated, in order. Multiple choice
	// options keep their "A) " marker; true/false options may or may not
	// carry one depending on how the model formatted them.
	Options []string

	// CorrectAnswer is one of Options.
	CorrectAnswer string

	// LenientMatch is set when the "Correct:" token matched no option and
	// the first option was taken instead.
	LenientMatch bool

	// Type is the format the question was requested in.
	Type taxonomy.QuestionType

	// Raw is the generated text the question was parsed from.
	Raw string

	// Ordinal is the generation attempt that produced this question.
	Ordinal int
}

// Choices returns the options with their letter markers removed.
func (q *Question) Choices() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = StripMarker(o)
	}
	return out
}

// CorrectContent returns the correct answer without its letter marker.
func (q *Question) CorrectContent() string {
	return StripMarker(q.CorrectAnswer)
}

// Check reports whether answer matches the correct option's content,
// ignoring surrounding whitespace and case.
func (q *Question) Check(answer string) bool {
	return normalize(answer) == normalize(q.CorrectContent())
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GenerateInput holds the per-session state a generation call reads and
// advances.
type GenerateInput struct {
	// Selection is the session's topic and format.
	Selection taxonomy.Selection

	// Conversation is the rolling prompt context. Generate appends to it
	// and trims it.
	Conversation *Conversation

	// Ordinals hands out one value per generation attempt.
	Ordinals *Counter
}

// Counter is the per-session ordinal counter. Not safe for concurrent use;
// the owning session serializes access.
type Counter struct {
	n int
}

// Next consumes and returns the next ordinal, starting at 1.
func (c *Counter) Next() int {
	c.n++
	return c.n
}

// Last returns the most recently issued ordinal, or 0.
func (c *Counter) Last() int {
	return c.n
}
