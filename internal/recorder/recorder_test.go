package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/store"
)

func sampleRecord() session.Record {
	return session.Record{
		SessionID:    "3f1c2c9e-0d4b-4bb6-9d55-2f7a8f7d9a10",
		Region:       "Europe",
		AgeGroup:     "25-34",
		GeneralTopic: "History",
		SubTopic:     "Ancient",
		Difficulty:   "Medium",
		QuestionType: "Multiple Choice",
		QuestionHistory: []session.AnswerRecord{
			{
				Question:      "Question: Who built the pyramids?\nA) Egyptians\nB) Romans\nC) Vikings\nD) Incas\nCorrect: A",
				Prompt:        "Who built the pyramids?",
				CorrectAnswer: "Egyptians",
				UserAnswer:    "Egyptians",
				IsCorrect:     true,
				TimeTaken:     6.25,
			},
			{
				Question:      "Question: Rome was founded in?\nA) 753 BC\nB) 100 AD\nC) 1066\nD) 1492\nCorrect: A",
				Prompt:        "Rome was founded in?",
				CorrectAnswer: "753 BC",
				UserAnswer:    session.SkippedAnswer,
				TimeTaken:     30,
			},
		},
		Score:          1,
		TotalQuestions: 2,
		Timestamp:      time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *session.Record)
		ok     bool
	}{
		{"valid", func(*session.Record) {}, true},
		{"empty history", func(r *session.Record) {
			r.QuestionHistory = []session.AnswerRecord{}
			r.Score, r.TotalQuestions = 0, 0
		}, true},
		{"missing session id", func(r *session.Record) { r.SessionID = "" }, false},
		{"null history", func(r *session.Record) {
			r.QuestionHistory = nil
			r.Score, r.TotalQuestions = 0, 0
		}, false},
		{"negative score", func(r *session.Record) { r.Score = -1 }, false},
		{"negative time", func(r *session.Record) { r.QuestionHistory[0].TimeTaken = -1 }, false},
		{"total mismatch", func(r *session.Record) { r.TotalQuestions = 3 }, false},
		{"score mismatch", func(r *session.Record) { r.Score = 2 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			tt.mutate(&rec)
			err := Validate(rec)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRecord)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestSchema_DescribesRecord(t *testing.T) {
	s := Schema()
	require.NotNil(t, s.Properties)
	for _, key := range []string{"session_id", "region", "age_group", "general_topic", "sub_topic",
		"difficulty", "question_type", "question_history", "score", "total_questions", "timestamp"} {
		_, ok := s.Properties.Get(key)
		assert.True(t, ok, "missing property %s", key)
	}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRecorder(t *testing.T) {
	st := openStore(t)
	r := NewStoreRecorder(st.SessionRepo(), st.EventRepo(), nil)
	ctx := context.Background()
	rec := sampleRecord()

	require.NoError(t, r.Record(ctx, rec))

	got, err := st.SessionRepo().Get(ctx, rec.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "History", got.GeneralTopic)
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, 2, got.TotalQuestions)

	var doc session.Record
	require.NoError(t, json.Unmarshal([]byte(got.Record), &doc))
	assert.Equal(t, rec.QuestionHistory, doc.QuestionHistory)
	assert.True(t, rec.Timestamp.Equal(got.Timestamp))
}

func TestStoreRecorder_RejectsInvalid(t *testing.T) {
	st := openStore(t)
	r := NewStoreRecorder(st.SessionRepo(), st.EventRepo(), nil)
	rec := sampleRecord()
	rec.Score = 5

	err := r.Record(context.Background(), rec)
	require.ErrorIs(t, err, ErrInvalidRecord)

	sessions, err := st.SessionRepo().List(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStoreRecorder_RecordAnswer(t *testing.T) {
	st := openStore(t)
	r := NewStoreRecorder(st.SessionRepo(), st.EventRepo(), nil)
	ctx := context.Background()
	rec := sampleRecord()

	require.NoError(t, r.RecordAnswer(ctx, session.AnswerEvent{SessionID: rec.SessionID, Ordinal: 1, Answer: rec.QuestionHistory[0]}))
	require.NoError(t, r.RecordAnswer(ctx, session.AnswerEvent{SessionID: rec.SessionID, Ordinal: 3, Answer: rec.QuestionHistory[1], Skipped: true}))

	events, err := st.EventRepo().AnswersForSession(ctx, rec.SessionID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(6250), events[0].TimeMs)
	assert.True(t, events[0].Correct)
	assert.Equal(t, 3, events[1].Ordinal)
	assert.True(t, events[1].Skipped)
	assert.Equal(t, "753 BC", events[1].CorrectAnswer)
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaRecorder(t *testing.T) {
	w := &fakeWriter{}
	k := &KafkaRecorder{writer: w}
	rec := sampleRecord()

	require.NoError(t, k.Record(context.Background(), rec))
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, rec.SessionID, string(msg.Key))
	assert.True(t, rec.Timestamp.Equal(msg.Time))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &doc))
	assert.Equal(t, "History", doc["general_topic"])
	assert.Equal(t, float64(2), doc["total_questions"])
	assert.Equal(t, "2026-05-04T12:00:00Z", doc["timestamp"])

	require.NoError(t, k.Close())
	assert.True(t, w.closed)
}

func TestKafkaRecorder_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unreachable")}
	k := &KafkaRecorder{writer: w}

	err := k.Record(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unreachable")
}

func TestKafkaConfig_Enabled(t *testing.T) {
	assert.False(t, KafkaConfig{}.Enabled())
	assert.False(t, KafkaConfig{Brokers: []string{"localhost:9092"}}.Enabled())
	assert.True(t, KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "quiz-sessions"}.Enabled())
}

type stubRecorder struct {
	calls int
	err   error
}

func (s *stubRecorder) Record(context.Context, session.Record) error {
	s.calls++
	return s.err
}

func TestMulti(t *testing.T) {
	first := &stubRecorder{err: errors.New("first failed")}
	second := &stubRecorder{}
	third := &stubRecorder{err: errors.New("third failed")}
	m := NewMulti(first, nil, second, third)

	err := m.Record(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first failed")
	assert.Contains(t, err.Error(), "third failed")
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)

	assert.NoError(t, NewMulti().Record(context.Background(), sampleRecord()))
	assert.NoError(t, Nop{}.Record(context.Background(), sampleRecord()))
}
