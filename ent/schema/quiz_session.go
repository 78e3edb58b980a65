package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizSession is one finished quiz as handed to the recorder.
type QuizSession struct {
	ent.Schema
}

func (QuizSession) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Unique().
			NotEmpty().
			Comment("UUID assigned at Start"),
		field.String("region").
			Default("").
			Comment("Participant region, free text"),
		field.String("age_group").
			Default("").
			Comment("Participant age group, free text"),
		field.String("general_topic"),
		field.String("sub_topic"),
		field.String("difficulty").
			Comment("Easy, Medium or Hard"),
		field.String("question_type").
			Comment("Multiple Choice or True/False"),
		field.Int("score"),
		field.Int("total_questions"),
		field.Text("record").
			Comment("The full JSON session document"),
	}
}

func (QuizSession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("general_topic"),
	}
}
