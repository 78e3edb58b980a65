package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drdavisdfelix/quiz/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect recorded quiz sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withStore(cmd, func(ctx context.Context, st *store.Store) error {
			list, err := st.SessionRepo().List(ctx, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query sessions: %w", err)
			}
			printSessions(cmd.OutOrStdout(), list)
			return nil
		})
	},
}

func printSessions(w io.Writer, list []store.QuizSession) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-16s  %-18s  %-18s  %-6s  %s\n",
		"Session", "Time", "Topic", "Subtopic", "Level", "Score")
	fmt.Fprintln(w, strings.Repeat("─", 112))
	for _, q := range list {
		fmt.Fprintf(w, "%-36s  %-16s  %-18s  %-18s  %-6s  %d/%d\n",
			q.SessionID,
			q.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(q.GeneralTopic, 18),
			truncate(q.SubTopic, 18),
			q.Difficulty,
			q.Score, q.TotalQuestions,
		)
	}
}

var sessionsViewCmd = &cobra.Command{
	Use:   "view <session-id>",
	Short: "Show a session and every answered question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("json")

		return withStore(cmd, func(ctx context.Context, st *store.Store) error {
			q, err := st.SessionRepo().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get session: %w", err)
			}
			if q == nil {
				return fmt.Errorf("session %s not found", args[0])
			}
			answers, err := st.EventRepo().AnswersForSession(ctx, q.SessionID)
			if err != nil {
				return fmt.Errorf("query answers: %w", err)
			}
			printSession(cmd.OutOrStdout(), q, answers, raw)
			return nil
		})
	},
}

func printSession(w io.Writer, q *store.QuizSession, answers []store.AnswerEvent, raw bool) {
	fmt.Fprintf(w, "Session:   %s\n", q.SessionID)
	fmt.Fprintf(w, "Time:      %s\n", q.Timestamp.Local().Format(timeLayout))
	if q.Region != "" || q.AgeGroup != "" {
		fmt.Fprintf(w, "Player:    %s / %s\n", q.Region, q.AgeGroup)
	}
	fmt.Fprintf(w, "Topic:     %s › %s\n", q.GeneralTopic, q.SubTopic)
	fmt.Fprintf(w, "Format:    %s, %s\n", q.Difficulty, q.QuestionType)
	fmt.Fprintf(w, "Score:     %d/%d\n", q.Score, q.TotalQuestions)

	sep := strings.Repeat("─", 60)
	for _, a := range answers {
		mark := "✗"
		switch {
		case a.Skipped:
			mark = "–"
		case a.Correct:
			mark = "✓"
		}
		fmt.Fprintln(w, sep)
		fmt.Fprintf(w, "Q%d %s  (%.1fs)\n", a.Ordinal, mark, float64(a.TimeMs)/1000)
		fmt.Fprintln(w, a.QuestionText)
		fmt.Fprintf(w, "Correct answer = %s, Your answer = %s\n", a.CorrectAnswer, a.UserAnswer)
	}
	if len(answers) == 0 {
		fmt.Fprintln(w, "\nNo answers recorded.")
	}
	if raw {
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, q.Record)
	}
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	sessionsViewCmd.Flags().Bool("json", false, "Also print the recorded JSON document")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsViewCmd)
}
