package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// QuizSession is one finished quiz session as persisted. Record holds the
// full JSON document handed to the recorder.
type QuizSession struct {
	ID             int       `sql:"id"`
	Sequence       int64     `sql:"sequence"`
	Timestamp      time.Time `sql:"timestamp"`
	SessionID      string    `sql:"session_id"`
	Region         string    `sql:"region"`
	AgeGroup       string    `sql:"age_group"`
	GeneralTopic   string    `sql:"general_topic"`
	SubTopic       string    `sql:"sub_topic"`
	Difficulty     string    `sql:"difficulty"`
	QuestionType   string    `sql:"question_type"`
	Score          int       `sql:"score"`
	TotalQuestions int       `sql:"total_questions"`
	Record         string    `sql:"record"`
}

// SessionRepo manages finished quiz sessions.
type SessionRepo interface {
	// Save appends a session. Sequence is assigned by the store; a zero
	// Timestamp is replaced with the current time.
	Save(ctx context.Context, s QuizSession) error

	// List returns sessions newest first.
	List(ctx context.Context, opts QueryOpts) ([]QuizSession, error)

	// Get returns the session with the given session ID, or nil if none exists.
	Get(ctx context.Context, sessionID string) (*QuizSession, error)
}

// AnswerEventData captures a single answered or skipped question.
type AnswerEventData struct {
	SessionID     string
	Ordinal       int
	QuestionText  string
	CorrectAnswer string
	UserAnswer    string
	Correct       bool
	Skipped       bool
	TimeMs        int64
}

// AnswerEvent is a stored answer event.
type AnswerEvent struct {
	ID            int       `sql:"id"`
	Sequence      int64     `sql:"sequence"`
	Timestamp     time.Time `sql:"timestamp"`
	SessionID     string    `sql:"session_id"`
	Ordinal       int       `sql:"ordinal"`
	QuestionText  string    `sql:"question_text"`
	CorrectAnswer string    `sql:"correct_answer"`
	UserAnswer    string    `sql:"user_answer"`
	Correct       bool      `sql:"correct"`
	Skipped       bool      `sql:"skipped"`
	TimeMs        int64     `sql:"time_ms"`
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID           int       `sql:"id"`
	Sequence     int64     `sql:"sequence"`
	Timestamp    time.Time `sql:"timestamp"`
	Provider     string    `sql:"provider"`
	Model        string    `sql:"model"`
	Purpose      string    `sql:"purpose"`
	SessionID    string    `sql:"session_id"`
	InputTokens  int       `sql:"input_tokens"`
	OutputTokens int       `sql:"output_tokens"`
	LatencyMs    int64     `sql:"latency_ms"`
	Success      bool      `sql:"success"`
	ErrorMessage string    `sql:"error_message"`
	RequestBody  string    `sql:"request_body"`
	ResponseBody string    `sql:"response_body"`
}

// PurposeUsage aggregates LLM usage for one request purpose.
type PurposeUsage struct {
	Purpose      string `sql:"purpose"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	AvgLatencyMs int64  `sql:"avg_latency_ms"`
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string `sql:"model"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendAnswer records an answered or skipped question.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AnswersForSession returns a session's answer events in order.
	AnswersForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error)

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
