package session

import (
	"context"
	"time"
)

// Record is the transcript of a finished session.
type Record struct {
	SessionID       string         `json:"session_id" jsonschema:"minLength=1"`
	Region          string         `json:"region"`
	AgeGroup        string         `json:"age_group"`
	GeneralTopic    string         `json:"general_topic"`
	SubTopic        string         `json:"sub_topic"`
	Difficulty      string         `json:"difficulty"`
	QuestionType    string         `json:"question_type"`
	QuestionHistory []AnswerRecord `json:"question_history"`
	Score           int            `json:"score" jsonschema:"minimum=0"`
	TotalQuestions  int            `json:"total_questions" jsonschema:"minimum=0"`
	Timestamp       time.Time      `json:"timestamp"`
}

// Recorder receives the record of every ended session.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// AnswerEvent is one history entry as it is appended.
type AnswerEvent struct {
	SessionID string
	Ordinal   int
	Answer    AnswerRecord
	Skipped   bool
}

// AnswerSink receives answer events as they happen.
type AnswerSink interface {
	RecordAnswer(ctx context.Context, ev AnswerEvent) error
}

func (s *Session) buildRecord(now time.Time) Record {
	history := make([]AnswerRecord, len(s.history))
	copy(history, s.history)
	return Record{
		SessionID:       s.id,
		Region:          s.participant.Region,
		AgeGroup:        s.participant.AgeGroup,
		GeneralTopic:    s.selection.GeneralTopic,
		SubTopic:        s.selection.SubTopic,
		Difficulty:      s.selection.Difficulty,
		QuestionType:    string(s.selection.QuestionType),
		QuestionHistory: history,
		Score:           s.score,
		TotalQuestions:  len(s.history),
		Timestamp:       now.UTC(),
	}
}
