package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var answerEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "ordinal", "question_text",
	"correct_answer", "user_answer", "correct", "skipped", "time_ms",
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	err = insert(ctx, r.drv, AnswerEventsTable.Name, answerEventColumns[1:], []any{
		seqNum,
		time.Now().UTC(),
		data.SessionID,
		data.Ordinal,
		data.QuestionText,
		data.CorrectAnswer,
		data.UserAnswer,
		data.Correct,
		data.Skipped,
		data.TimeMs,
	})
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AnswersForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(answerEventColumns...).
		From(entsql.Dialect(dialect.SQLite).Table(AnswerEventsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy(entsql.Asc("sequence"))

	var events []AnswerEvent
	if err := selectInto(ctx, r.drv, sel, &events); err != nil {
		return nil, fmt.Errorf("query answers for %s: %w", sessionID, err)
	}
	return events, nil
}
