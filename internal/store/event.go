package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter numbers events across every event table so answers,
// sessions and LLM calls share one order. Its single row lives in
// global_sequence and each Next is one transaction.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter seeds the counter row unless an earlier run left one.
func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	query, args := builder().
		Insert(tableSequence).
		Columns(colID, colNextVal).
		Values(1, 1).
		OnConflict(
			entsql.ConflictColumns(colID),
			entsql.DoNothing(),
		).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the current value and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx, err := sc.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sequence: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().
		Select(colNextVal).
		From(entsql.Table(tableSequence)).
		Where(entsql.EQ(colID, 1)).
		Query()
	var seq int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}

	query, args = builder().
		Update(tableSequence).
		Set(colNextVal, seq+1).
		Where(entsql.EQ(colID, 1)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence: %w", err)
	}
	return seq, nil
}
