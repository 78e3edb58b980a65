package session

import (
	"errors"

	"github.com/drdavisdfelix/quiz/internal/questiongen"
	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

var (
	// ErrUnknownTopic is returned when a topic or subtopic is outside the catalogue.
	ErrUnknownTopic = taxonomy.ErrUnknownTopic

	// ErrInvalidConfig is returned for an unrecognised difficulty or question type.
	ErrInvalidConfig = errors.New("invalid session configuration")

	// ErrConfigIncomplete is returned when a choice is made out of order or
	// Start is called before every choice is made.
	ErrConfigIncomplete = errors.New("session configuration incomplete")

	ErrSessionInProgress = errors.New("session in progress")
	ErrNoActiveQuestion  = errors.New("no active question")
	ErrSessionEnded      = errors.New("session ended")

	ErrGenerationExhausted = questiongen.ErrGenerationExhausted
	ErrGenerationTimeout   = questiongen.ErrGenerationTimeout
	ErrGenerationFailed    = questiongen.ErrGenerationFailed
)
