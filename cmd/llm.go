package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/drdavisdfelix/quiz/internal/llm"
	"github.com/drdavisdfelix/quiz/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded question generation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		sessionID, _ := cmd.Flags().GetString("session")

		return withStore(cmd, func(ctx context.Context, st *store.Store) error {
			events, err := st.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			events = lo.Filter(events, func(e store.LLMEvent, _ int) bool {
				return (purpose == "" || e.Purpose == purpose) &&
					(sessionID == "" || e.SessionID == sessionID)
			})
			printLLMEvents(cmd.OutOrStdout(), events)
			return nil
		})
	},
}

func printLLMEvents(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM requests found.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-19s  %-10s  %-8s  %-26s  %6s  %6s  %6s  %s\n",
		"ID", "Time", "Provider", "Session", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 104))
	for _, e := range events {
		fmt.Fprintf(w, "%-5d  %-19s  %-10s  %-8s  %-26s  %6d  %6d  %6d  %s\n",
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			truncate(e.Provider, 10),
			truncate(e.SessionID, 8),
			truncate(e.Model, 26),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			lo.Ternary(e.Success, "✓", "✗"),
		)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withStore(cmd, func(ctx context.Context, st *store.Store) error {
			e, err := st.EventRepo().GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			printLLMEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

func printLLMEvent(w io.Writer, e *store.LLMEvent) {
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-10s %s\n", name+":", value)
		}
	}
	field("ID", strconv.Itoa(e.ID))
	field("Time", e.Timestamp.Local().Format(timeLayout))
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	field("Session", e.SessionID)
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	field("Success", strconv.FormatBool(e.Success))
	field("Error", e.ErrorMessage)

	sep := strings.Repeat("─", 60)
	for _, part := range []struct{ title, body string }{
		{"PROMPT", e.RequestBody},
		{"REPLY", e.ResponseBody},
	} {
		fmt.Fprintf(w, "\n%s\n%s\n%s\n", sep, part.title, sep)
		fmt.Fprintln(w, lo.Ternary(part.body != "", part.body, "(not captured)"))
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, st *store.Store) error {
			byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			byModel, err := st.EventRepo().LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			printLLMStats(cmd.OutOrStdout(), byPurpose, byModel)
			return nil
		})
	},
}

func printLLMStats(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}
	rule := strings.Repeat("─", 72)

	fmt.Fprintln(w, "Usage by purpose")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-16s  %6d  %10d  %10d\n", "TOTAL",
		lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.Calls }),
		lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.InputTokens }),
		lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.OutputTokens }),
	)

	if len(byModel) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated cost (USD)")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %9s\n", "Model", "Calls", "Input", "Output", "Cost")

	var total float64
	var unpriced []string
	for _, u := range byModel {
		cost := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %9s\n",
			truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %9s\n",
		lo.Ternary(len(unpriced) > 0, "TOTAL (partial)", "TOTAL"), "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. question-gen)")
	llmListCmd.Flags().StringP("session", "s", "", "Filter by quiz session ID")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
