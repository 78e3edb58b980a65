package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose", "session_id",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	err = insert(ctx, r.drv, LLMRequestEventsTable.Name, llmEventColumns[1:], []any{
		seqNum,
		time.Now().UTC(),
		data.Provider,
		data.Model,
		data.Purpose,
		data.SessionID,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
		data.RequestBody,
		data.ResponseBody,
	})
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(llmEventColumns...).
		From(entsql.Dialect(dialect.SQLite).Table(LLMRequestEventsTable.Name))

	var events []LLMEvent
	if err := selectInto(ctx, r.drv, applyOpts(sel, opts), &events); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(llmEventColumns...).
		From(entsql.Dialect(dialect.SQLite).Table(LLMRequestEventsTable.Name)).
		Where(entsql.EQ("id", id))

	var events []LLMEvent
	if err := selectInto(ctx, r.drv, sel, &events); err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows := &entsql.Rows{}
	err := r.drv.Query(ctx, `SELECT purpose,
		COUNT(*) AS calls,
		COALESCE(SUM(input_tokens), 0) AS input_tokens,
		COALESCE(SUM(output_tokens), 0) AS output_tokens,
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER) AS avg_latency_ms
		FROM llm_request_events GROUP BY purpose ORDER BY calls DESC, purpose`, []any{}, rows)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, fmt.Errorf("scan usage by purpose: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows := &entsql.Rows{}
	err := r.drv.Query(ctx, `SELECT model,
		COUNT(*) AS calls,
		COALESCE(SUM(input_tokens), 0) AS input_tokens,
		COALESCE(SUM(output_tokens), 0) AS output_tokens
		FROM llm_request_events GROUP BY model ORDER BY calls DESC, model`, []any{}, rows)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, fmt.Errorf("scan usage by model: %w", err)
	}
	return out, nil
}
