package recorder

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/store"
)

// StoreRecorder writes sessions and their answers to the local store.
type StoreRecorder struct {
	sessions store.SessionRepo
	events   store.EventRepo
	logger   *zap.Logger
}

// NewStoreRecorder creates a recorder backed by the given repos.
func NewStoreRecorder(sessions store.SessionRepo, events store.EventRepo, logger *zap.Logger) *StoreRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreRecorder{sessions: sessions, events: events, logger: logger}
}

// Record validates rec and saves it with the full JSON document attached.
func (r *StoreRecorder) Record(ctx context.Context, rec session.Record) error {
	if err := Validate(rec); err != nil {
		return err
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	err = r.sessions.Save(ctx, store.QuizSession{
		Timestamp:      rec.Timestamp,
		SessionID:      rec.SessionID,
		Region:         rec.Region,
		AgeGroup:       rec.AgeGroup,
		GeneralTopic:   rec.GeneralTopic,
		SubTopic:       rec.SubTopic,
		Difficulty:     rec.Difficulty,
		QuestionType:   rec.QuestionType,
		Score:          rec.Score,
		TotalQuestions: rec.TotalQuestions,
		Record:         string(doc),
	})
	if err != nil {
		return err
	}

	r.logger.Debug("session saved",
		zap.String("session_id", rec.SessionID),
		zap.Int("total", rec.TotalQuestions),
	)
	return nil
}

// RecordAnswer appends one answer event.
func (r *StoreRecorder) RecordAnswer(ctx context.Context, ev session.AnswerEvent) error {
	if r.events == nil {
		return nil
	}
	return r.events.AppendAnswer(ctx, store.AnswerEventData{
		SessionID:     ev.SessionID,
		Ordinal:       ev.Ordinal,
		QuestionText:  ev.Answer.Question,
		CorrectAnswer: ev.Answer.CorrectAnswer,
		UserAnswer:    ev.Answer.UserAnswer,
		Correct:       ev.Answer.IsCorrect,
		Skipped:       ev.Skipped,
		TimeMs:        int64(ev.Answer.TimeTaken * 1000),
	})
}
