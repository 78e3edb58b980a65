package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table layouts for the quiz database. Migration is handled by ent's
// atlas-backed migrator, so columns may be added here without hand-written
// ALTER statements.
var (
	QuizSessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString, Unique: true},
		{Name: "region", Type: field.TypeString, Default: ""},
		{Name: "age_group", Type: field.TypeString, Default: ""},
		{Name: "general_topic", Type: field.TypeString},
		{Name: "sub_topic", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "question_type", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "record", Type: field.TypeString, Size: 2147483647},
	}
	QuizSessionsTable = &schema.Table{
		Name:       "quiz_sessions",
		Columns:    QuizSessionsColumns,
		PrimaryKey: []*schema.Column{QuizSessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "quizsession_sequence", Unique: true, Columns: []*schema.Column{QuizSessionsColumns[1]}},
			{Name: "quizsession_general_topic", Unique: false, Columns: []*schema.Column{QuizSessionsColumns[6]}},
		},
	}

	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "ordinal", Type: field.TypeInt},
		{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "user_answer", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "skipped", Type: field.TypeBool, Default: false},
		{Name: "time_ms", Type: field.TypeInt64},
	}
	AnswerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_sequence", Unique: true, Columns: []*schema.Column{AnswerEventsColumns[1]}},
			{Name: "answerevent_session_id", Unique: false, Columns: []*schema.Column{AnswerEventsColumns[3]}},
		},
	}

	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	LLMRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_sequence", Unique: true, Columns: []*schema.Column{LLMRequestEventsColumns[1]}},
			{Name: "llmrequestevent_purpose", Unique: false, Columns: []*schema.Column{LLMRequestEventsColumns[5]}},
			{Name: "llmrequestevent_session_id", Unique: false, Columns: []*schema.Column{LLMRequestEventsColumns[6]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		QuizSessionsTable,
		AnswerEventsTable,
		LLMRequestEventsTable,
	}
)
