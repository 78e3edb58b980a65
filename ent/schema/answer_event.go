package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answered or skipped question.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to QuizSession"),
		field.Int("ordinal").
			Comment("1-based position in the session"),
		field.Text("question_text").
			Comment("The question as generated"),
		field.String("correct_answer"),
		field.String("user_answer").
			Comment("What the player chose, or Skipped"),
		field.Bool("correct"),
		field.Bool("skipped").
			Default(false).
			Comment("Timed out or skipped by the player"),
		field.Int64("time_ms").
			Comment("Milliseconds spent on the question"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
