package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var quizSessionColumns = []string{
	"id", "sequence", "timestamp", "session_id", "region", "age_group",
	"general_topic", "sub_topic", "difficulty", "question_type", "score",
	"total_questions", "record",
}

// sessionRepo implements SessionRepo.
type sessionRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *sessionRepo) Save(ctx context.Context, s QuizSession) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := s.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	err = insert(ctx, r.drv, QuizSessionsTable.Name, quizSessionColumns[1:], []any{
		seqNum,
		ts.UTC(),
		s.SessionID,
		s.Region,
		s.AgeGroup,
		s.GeneralTopic,
		s.SubTopic,
		s.Difficulty,
		s.QuestionType,
		s.Score,
		s.TotalQuestions,
		s.Record,
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.SessionID, err)
	}
	return nil
}

func (r *sessionRepo) List(ctx context.Context, opts QueryOpts) ([]QuizSession, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(quizSessionColumns...).
		From(entsql.Dialect(dialect.SQLite).Table(QuizSessionsTable.Name))

	var sessions []QuizSession
	if err := selectInto(ctx, r.drv, applyOpts(sel, opts), &sessions); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepo) Get(ctx context.Context, sessionID string) (*QuizSession, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(quizSessionColumns...).
		From(entsql.Dialect(dialect.SQLite).Table(QuizSessionsTable.Name)).
		Where(entsql.EQ("session_id", sessionID))

	var sessions []QuizSession
	if err := selectInto(ctx, r.drv, sel, &sessions); err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}
