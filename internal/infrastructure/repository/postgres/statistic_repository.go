package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
	qb "github.com/riskibarqy/football-hub/internal/platform/querybuilder"
)

type StatisticRepository struct {
	db *sqlx.DB
}

func NewStatisticRepository(db *sqlx.DB) *StatisticRepository {
	return &StatisticRepository{db: db}
}

func (r *StatisticRepository) UpsertStatistics(ctx context.Context, items []statistic.Statistic) (reconcile.BatchResult, error) {
	return writeBatch(ctx, r.db, "statistics", items, func(s statistic.Statistic) string {
		return s.Key().String()
	}, upsertStatistic)
}

func upsertStatistic(ctx context.Context, tx *sqlx.Tx, item statistic.Statistic) (reconcile.Outcome, error) {
	var row statisticTableModel
	err := tx.GetContext(ctx, &row, `SELECT * FROM statistics
WHERE competition = $1 AND season = $2 AND player_source_id = $3
FOR UPDATE`, item.Competition, item.Season, item.PlayerSourceID)
	switch {
	case isNotFound(err):
		inserted, err := insertIfAbsent(ctx, tx, "statistics", "competition, season, player_source_id", statisticToModel(item))
		if err != nil {
			return 0, err
		}
		if !inserted {
			return upsertStatistic(ctx, tx, item)
		}
		return reconcile.Inserted, nil
	case err != nil:
		return 0, fmt.Errorf("lock statistic: %w", err)
	}

	existing := row.toDomain()
	merged := statistic.Merge(existing, item)
	if statistic.SameContent(existing, merged) {
		return reconcile.Unchanged, nil
	}
	if err := updateByID(ctx, tx, "statistics", existing.ID, statisticToModel(merged)); err != nil {
		return 0, err
	}
	return reconcile.Updated, nil
}

func (r *StatisticRepository) Top(ctx context.Context, filter statistic.Filter) ([]statistic.Statistic, int, error) {
	var conditions []qb.Condition
	if filter.Competition != "" {
		conditions = append(conditions, qb.Eq("competition", filter.Competition))
	}
	if filter.Season != "" {
		conditions = append(conditions, qb.Eq("season", filter.Season))
	}
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("position", string(filter.Position)))
	}

	// ParseSort whitelists the column, so it is safe to splice in.
	sortField, _ := statistic.ParseSort(string(filter.Sort))
	b := qb.Select("*").From("statistics").Where(conditions...).
		OrderBy(string(sortField)+" DESC NULLS LAST", "player_name", "id")

	countQuery, countArgs, err := b.CountSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count statistics query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count statistics: %w", err)
	}

	query, args, err := b.Page(filter.Page, perPageOrDefault(filter.PerPage, 20)).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build top statistics query: %w", err)
	}
	var rows []statisticTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select top statistics: %w", err)
	}

	out := make([]statistic.Statistic, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}
