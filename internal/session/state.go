package session

import "time"

// Phase is where a session is in its lifecycle.
type Phase int

const (
	PhaseIdle        Phase = iota // Nothing chosen yet
	PhaseConfiguring              // Participant or topic selection under way
	PhaseInProgress               // Serving questions
	PhaseEnded                    // Finished and recorded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConfiguring:
		return "configuring"
	case PhaseInProgress:
		return "in_progress"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Participant is the optional demographic info collected before topics.
type Participant struct {
	Region   string `json:"region"`
	AgeGroup string `json:"age_group"`
}

// AnswerRecord is one answered or skipped question.
type AnswerRecord struct {
	// Question is the generated text exactly as it was shown.
	Question string `json:"question"`

	// Prompt is the question line alone.
	Prompt string `json:"prompt"`

	// CorrectAnswer is the correct option's content without its letter marker.
	CorrectAnswer string `json:"correct_answer"`

	// UserAnswer is the submitted text, or SkippedAnswer.
	UserAnswer string `json:"user_answer"`

	IsCorrect bool `json:"is_correct"`

	// TimeTaken is in seconds.
	TimeTaken float64 `json:"time_taken" jsonschema:"minimum=0"`
}

// SkippedAnswer is recorded as the user answer of a skipped question.
const SkippedAnswer = "Skipped"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
