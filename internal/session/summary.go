package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

// QuestionView is the open question as a host displays it.
type QuestionView struct {
	Ordinal int                   `json:"ordinal"`
	Prompt  string                `json:"prompt"`
	Choices []string              `json:"choices"`
	Type    taxonomy.QuestionType `json:"type"`
	Raw     string                `json:"raw"`
}

// View is a point-in-time copy of the session for hosts.
type View struct {
	Phase       Phase              `json:"-"`
	PhaseName   string             `json:"phase"`
	SessionID   string             `json:"session_id,omitempty"`
	Participant Participant        `json:"participant"`
	Selection   taxonomy.Selection `json:"selection"`
	Question    *QuestionView      `json:"question,omitempty"`
	LastAnswer  *AnswerRecord      `json:"last_answer,omitempty"`
	Score       int                `json:"score"`
	Total       int                `json:"total"`
	ScoreText   string             `json:"score_text"`
	Elapsed     time.Duration      `json:"-"`
	ElapsedText string             `json:"elapsed"`
}

// Snapshot returns the current view, with elapsed time read from the clock.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Phase:       s.phase,
		PhaseName:   s.phase.String(),
		SessionID:   s.id,
		Participant: s.participant,
		Selection:   s.selection,
		Question:    s.questionView(),
		Score:       s.score,
		Total:       len(s.history),
		ScoreText:   fmt.Sprintf("Score: %d/%d", s.score, len(s.history)),
	}
	if s.lastAnswer != nil {
		last := *s.lastAnswer
		v.LastAnswer = &last
	}
	if s.phase == PhaseInProgress {
		v.Elapsed = s.elapsedAt(s.clock.Now())
	}
	v.ElapsedText = FormatElapsed(v.Elapsed)
	return v
}

func (s *Session) questionView() *QuestionView {
	if s.current == nil {
		return nil
	}
	return &QuestionView{
		Ordinal: s.current.Ordinal,
		Prompt:  s.current.Prompt,
		Choices: s.current.Choices(),
		Type:    s.current.Type,
		Raw:     s.current.Raw,
	}
}

// ScoreSummary renders the score and every answer record so far.
func (s *Session) ScoreSummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d/%d\n\n", s.score, len(s.history))
	for i, r := range s.history {
		fmt.Fprintf(&b, "Question %d: %s\nCorrect answer = %s, Your answer = %s\n\n",
			i+1, r.Question, r.CorrectAnswer, r.UserAnswer)
	}
	return b.String()
}
