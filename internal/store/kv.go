package store

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// KVRepo is a key/value view over one namespace of the kv_entries table.
type KVRepo struct {
	db        *sql.DB
	namespace string
	now       func() time.Time
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Load returns every key in the namespace.
func (r *KVRepo) Load(ctx context.Context) (map[string]string, error) {
	query, args := builder().
		Select(colKey, colValue).
		From(entsql.Table(tableKV)).
		Where(entsql.EQ(colNamespace, r.namespace)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s entries: %w", r.namespace, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", r.namespace, err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s entries: %w", r.namespace, err)
	}
	return values, nil
}

// Save replaces the whole namespace with values in one transaction.
func (r *KVRepo) Save(ctx context.Context, values map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save %s: %w", r.namespace, err)
	}
	defer tx.Rollback()

	query, args := builder().
		Delete(tableKV).
		Where(entsql.EQ(colNamespace, r.namespace)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear %s entries: %w", r.namespace, err)
	}

	if len(values) > 0 {
		now := r.now().UnixMilli()
		insert := builder().
			Insert(tableKV).
			Columns(colNamespace, colKey, colValue, colUpdatedAt)
		for _, k := range slices.Sorted(maps.Keys(values)) {
			insert.Values(r.namespace, k, values[k], now)
		}
		query, args = insert.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s entries: %w", r.namespace, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save %s: %w", r.namespace, err)
	}
	return nil
}

// Get returns the value of key and whether it exists.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().
		Select(colValue).
		From(entsql.Table(tableKV)).
		Where(entsql.And(
			entsql.EQ(colNamespace, r.namespace),
			entsql.EQ(colKey, key),
		)).
		Query()

	var v string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s/%s: %w", r.namespace, key, err)
	}
	return v, true, nil
}

// Set writes key, replacing any previous value.
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().
		Insert(tableKV).
		Columns(colNamespace, colKey, colValue, colUpdatedAt).
		Values(r.namespace, key, value, r.now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(colNamespace, colKey),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %s/%s: %w", r.namespace, key, err)
	}
	return nil
}

// Delete removes key.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().
		Delete(tableKV).
		Where(entsql.And(
			entsql.EQ(colNamespace, r.namespace),
			entsql.EQ(colKey, key),
		)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s/%s: %w", r.namespace, key, err)
	}
	return nil
}
