package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	qb "github.com/riskibarqy/football-hub/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

type recordFunc[T any] func(ctx context.Context, tx *sqlx.Tx, item T) (reconcile.Outcome, error)

// writeBatch runs one transaction per batch and one savepoint per record,
// so a failing record is rolled back and counted without aborting the rest.
func writeBatch[T any](ctx context.Context, db *sqlx.DB, entity string, items []T, key func(T) string, write recordFunc[T]) (reconcile.BatchResult, error) {
	var res reconcile.BatchResult
	if len(items) == 0 {
		return res, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin tx write %s: %w", entity, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT rec"); err != nil {
			return res, fmt.Errorf("savepoint %s: %w", entity, err)
		}
		outcome, err := write(ctx, tx, item)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT rec"); rbErr != nil {
				return res, fmt.Errorf("rollback savepoint %s: %w", entity, rbErr)
			}
			res.Fail(key(item), err)
			continue
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT rec"); err != nil {
			return res, fmt.Errorf("release savepoint %s: %w", entity, err)
		}
		res.Add(outcome)
	}

	if err := tx.Commit(); err != nil {
		return reconcile.BatchResult{}, fmt.Errorf("commit write %s tx: %w", entity, err)
	}
	return res, nil
}

// insertIfAbsent inserts the writable columns of model unless a row with the
// same natural key exists. It reports false when a concurrent writer won.
func insertIfAbsent(ctx context.Context, tx *sqlx.Tx, table, conflict string, model any) (bool, error) {
	query, args, err := qb.InsertModel(table, model, "ON CONFLICT ("+conflict+") DO NOTHING RETURNING id")
	if err != nil {
		return false, fmt.Errorf("build insert %s query: %w", table, err)
	}
	var id int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert %s: %w", table, err)
	}
	return true, nil
}

// updateByID rewrites the writable columns of model on one row. Extra
// conditions guard the write; a guarded-out row is left untouched.
func updateByID(ctx context.Context, tx *sqlx.Tx, table string, id int64, model any, guards ...qb.Condition) error {
	b, err := qb.UpdateModel(table, model)
	if err != nil {
		return fmt.Errorf("read %s model columns: %w", table, err)
	}
	query, args, err := b.SetExpr("updated_at", "NOW()").
		Where(append([]qb.Condition{qb.Eq("id", id)}, guards...)...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s id=%d: %w", table, id, err)
	}
	return nil
}

func perPageOrDefault(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullIntToPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func nullableID(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullIDToPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func nullableTime(v *time.Time) sql.NullTime {
	if v == nil || v.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}

func nullTimeToPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time.UTC()
	return &out
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// backfillRefs sets idColumn from ids wherever sourceColumn matches and the
// stored reference differs.
func backfillRefs(ctx context.Context, db *sqlx.DB, table, sourceColumn, idColumn, competition, season string, ids map[string]int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	sourceIDs := make([]string, 0, len(ids))
	refIDs := make([]int64, 0, len(ids))
	for sourceID, id := range ids {
		sourceIDs = append(sourceIDs, sourceID)
		refIDs = append(refIDs, id)
	}

	query := fmt.Sprintf(`UPDATE %[1]s AS t SET %[3]s = v.id, updated_at = NOW()
FROM unnest($3::text[], $4::bigint[]) AS v(source_id, id)
WHERE t.competition = $1 AND t.season = $2
  AND t.%[2]s = v.source_id
  AND t.%[3]s IS DISTINCT FROM v.id`, table, sourceColumn, idColumn)
	result, err := db.ExecContext(ctx, query, competition, season, pq.Array(sourceIDs), pq.Array(refIDs))
	if err != nil {
		return 0, fmt.Errorf("backfill %s.%s: %w", table, idColumn, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("backfill %s.%s rows affected: %w", table, idColumn, err)
	}
	return int(affected), nil
}

func pqStrings(values []string) any {
	return pq.Array(values)
}
