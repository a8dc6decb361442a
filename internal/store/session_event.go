package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the SQL builder and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) append(ctx context.Context, table string, columns []string, values ...any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	query, args := builder().
		Insert(table).
		Columns(append([]string{colSequence, colTimestamp}, columns...)...).
		Values(append([]any{seqNum, r.now().UnixMilli()}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.append(ctx, tableSessions,
		[]string{colSessionID, "action", colTier, "section", "questions_served", "correct_answers", "duration_secs"},
		data.SessionID, data.Action, data.Tier, data.Section, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.append(ctx, tableAnswers,
		[]string{colSessionID, "question_id", colTier, "section", "question_text", "correct_answer", "chosen_answer", colCorrect, "time_ms"},
		data.SessionID, data.QuestionID, data.Tier, data.Section, data.QuestionText, data.CorrectAnswer, data.ChosenAnswer, data.Correct, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

// eventSelector builds a SELECT over an event table honoring opts.
func eventSelector(table string, opts QueryOpts, columns ...string) *entsql.Selector {
	sel := builder().
		Select(append([]string{colSequence, colTimestamp}, columns...)...).
		From(entsql.Table(table))
	if opts.Newest {
		sel.OrderBy(entsql.Desc(colSequence))
	} else {
		sel.OrderBy(colSequence)
	}
	if opts.After > 0 {
		sel.Where(entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(colTimestamp, opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(colTimestamp, opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	query, args := eventSelector(tableSessions, opts,
		colSessionID, "action", colTier, "section", "questions_served", "correct_answers", "duration_secs",
	).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e  SessionEvent
			ts int64
		)
		err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Action, &e.Tier, &e.Section,
			&e.QuestionsServed, &e.CorrectAnswers, &e.DurationSecs)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	query, args := eventSelector(tableAnswers, opts,
		colSessionID, "question_id", colTier, "section", "question_text", "correct_answer", "chosen_answer", colCorrect, "time_ms",
	).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var (
			e  AnswerEvent
			ts int64
		)
		err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.QuestionID, &e.Tier, &e.Section,
			&e.QuestionText, &e.CorrectAnswer, &e.ChosenAnswer, &e.Correct, &e.TimeMs)
		if err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) AccuracyByTier(ctx context.Context) (map[string]Accuracy, error) {
	query, args := builder().
		Select(colTier, entsql.Count("*"), entsql.Sum(colCorrect)).
		From(entsql.Table(tableAnswers)).
		GroupBy(colTier).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accuracy: %w", err)
	}
	defer rows.Close()

	result := make(map[string]Accuracy)
	for rows.Next() {
		var (
			tier     string
			answered int
			correct  sql.NullInt64
		)
		if err := rows.Scan(&tier, &answered, &correct); err != nil {
			return nil, fmt.Errorf("scan accuracy: %w", err)
		}
		result[tier] = Accuracy{Answered: answered, Correct: int(correct.Int64)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accuracy: %w", err)
	}
	return result, nil
}
