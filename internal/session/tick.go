package session

import (
	"context"
	"fmt"
	"time"
)

// TickResult is what a timer host shows after a tick.
type TickResult struct {
	// Elapsed is the time spent on the question now open.
	Elapsed time.Duration `json:"-"`

	// Text is Elapsed formatted for display, e.g. "12.30 seconds".
	Text string `json:"elapsed"`

	// Skipped is set when the tick timed out the previous question.
	Skipped bool `json:"skipped"`

	// Skip is the record of the timed out question, when Skipped.
	Skip *AnswerRecord `json:"skip,omitempty"`

	// Question is the question that replaced it, when Skipped.
	Question *QuestionView `json:"question,omitempty"`
}

// Tick advances the question timer to now. Once the open question has
// been up for the question timeout it is skipped and the next one is
// generated. Before Start the timer reads zero.
func (s *Session) Tick(ctx context.Context, now time.Time) (TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.phase == PhaseEnded:
		return TickResult{}, ErrSessionEnded
	case s.phase != PhaseInProgress || s.current == nil:
		return TickResult{Text: FormatElapsed(0)}, nil
	}

	elapsed := s.elapsedAt(now)
	if elapsed < s.cfg.QuestionTimeout {
		return TickResult{Elapsed: elapsed, Text: FormatElapsed(elapsed)}, nil
	}

	rec, err := s.skipLocked(ctx)
	if err != nil {
		return TickResult{Elapsed: elapsed, Text: FormatElapsed(elapsed)}, err
	}
	return TickResult{
		Text:     FormatElapsed(0),
		Skipped:  true,
		Skip:     &rec,
		Question: s.questionView(),
	}, nil
}

func (s *Session) elapsedAt(now time.Time) time.Duration {
	d := now.Sub(s.questionStart)
	if d < 0 {
		return 0
	}
	return d
}

// FormatElapsed renders d as seconds with two decimals.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2f seconds", d.Seconds())
}
