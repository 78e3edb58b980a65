package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drdavisdfelix/quiz/internal/store"
)

func TestPrintLLMStats(t *testing.T) {
	var buf bytes.Buffer
	printLLMStats(&buf,
		[]store.PurposeUsage{{Purpose: "question-gen", Calls: 3, InputTokens: 1500, OutputTokens: 300, AvgLatencyMs: 800}},
		[]store.ModelUsage{
			{Model: "gpt-4o-mini-2024-07-18", Calls: 2, InputTokens: 1000, OutputTokens: 200},
			{Model: "llama3.2", Calls: 1, InputTokens: 500, OutputTokens: 100},
		},
	)
	out := buf.String()
	assert.Contains(t, out, "question-gen")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "No pricing for: llama3.2")
	assert.Contains(t, out, "$0.0003")
}

func TestPrintLLMStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printLLMStats(&buf, nil, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", buf.String())
}

func TestPrintLLMEventsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printLLMEvents(&buf, nil)
	assert.Contains(t, buf.String(), "No LLM requests found.")
}

func TestPrintSession(t *testing.T) {
	var buf bytes.Buffer
	printSession(&buf, &store.QuizSession{
		SessionID:      "abc",
		Timestamp:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		GeneralTopic:   "Sports",
		SubTopic:       "Tennis",
		Difficulty:     "Easy",
		QuestionType:   "True/False",
		Score:          0,
		TotalQuestions: 1,
		Record:         `{"session_id":"abc"}`,
	}, []store.AnswerEvent{{
		Ordinal: 1, QuestionText: "Wimbledon is played on clay.",
		CorrectAnswer: "False", UserAnswer: "Skipped", Skipped: true, TimeMs: 30000,
	}}, true)

	out := buf.String()
	assert.Contains(t, out, "Topic:     Sports › Tennis")
	assert.Contains(t, out, "Q1 –  (30.0s)")
	assert.Contains(t, out, "Correct answer = False, Your answer = Skipped")
	assert.Contains(t, out, `{"session_id":"abc"}`)
}

func TestSessionsListCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "quiz.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.SessionRepo().Save(context.Background(), store.QuizSession{
		Timestamp: time.Now(), SessionID: "s-42", GeneralTopic: "Literature", SubTopic: "Poetry",
		Difficulty: "Hard", QuestionType: "Multiple Choice", Score: 2, TotalQuestions: 3, Record: "{}",
	}))
	require.NoError(t, st.Close())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"sessions", "list", "--db", dbPath})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "s-42")
	assert.Contains(t, buf.String(), "2/3")
}

func TestTopicsCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"topics"})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Computer Science")
	assert.Contains(t, buf.String(), "True/False")
}
