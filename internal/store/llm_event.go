package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms",
	"success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.append(ctx, tableLLM, llmEventColumns,
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, purpose string, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := eventSelector(tableLLM, opts, llmEventColumns...)
	if purpose != "" {
		sel.Where(entsql.EQ("purpose", purpose))
	}
	query, args := sel.Query()
	return r.scanLLMEvents(ctx, query, args)
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, seq int64) (*LLMRequestEvent, error) {
	query, args := eventSelector(tableLLM, QueryOpts{}, llmEventColumns...).
		Where(entsql.EQ(colSequence, seq)).
		Query()
	events, err := r.scanLLMEvents(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) scanLLMEvents(ctx context.Context, query string, args []any) ([]LLMRequestEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		var (
			e                         LLMRequestEvent
			ts                        int64
			errMsg, reqBody, respBody sql.NullString
		)
		err := rows.Scan(&e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &errMsg, &reqBody, &respBody)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		e.ErrorMessage, e.RequestBody, e.ResponseBody = errMsg.String, reqBody.String, respBody.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	query, args := builder().
		Select("purpose", entsql.Count("*"), entsql.Sum("success"),
			entsql.Sum("input_tokens"), entsql.Sum("output_tokens"), entsql.Avg("latency_ms")).
		From(entsql.Table(tableLLM)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var usage []LLMUsage
	for rows.Next() {
		var (
			u           LLMUsage
			ok, in, out sql.NullInt64
			latency     sql.NullFloat64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &ok, &in, &out, &latency); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		u.Failures = u.Calls - int(ok.Int64)
		u.InputTokens, u.OutputTokens = int(in.Int64), int(out.Int64)
		u.AvgLatencyMs = int64(latency.Float64)
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM usage: %w", err)
	}
	return usage, nil
}
