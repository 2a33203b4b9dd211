package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	qb "github.com/riskibarqy/football-hub/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ReplaceStandings(ctx context.Context, competition, season string, rows []standing.Row) (reconcile.BatchResult, error) {
	res, err := writeBatch(ctx, r.db, "standings", rows, func(row standing.Row) string {
		return row.Key().String()
	}, upsertStanding)
	if err != nil || len(rows) == 0 {
		return res, err
	}

	refreshed := make([]string, 0, len(rows))
	for _, row := range rows {
		refreshed = append(refreshed, standingRefreshKey(row.ClubSourceID, row.Group))
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE standings SET stale = TRUE, updated_at = NOW()
WHERE competition = $1 AND season = $2 AND NOT stale
  AND NOT (club_source_id || '|' || group_name = ANY($3))`, competition, season, pq.Array(refreshed)); err != nil {
		return res, fmt.Errorf("mark stale standings competition=%s season=%s: %w", competition, season, err)
	}
	return res, nil
}

func standingRefreshKey(clubSourceID, group string) string {
	return clubSourceID + "|" + group
}

func upsertStanding(ctx context.Context, tx *sqlx.Tx, item standing.Row) (reconcile.Outcome, error) {
	var row standingTableModel
	err := tx.GetContext(ctx, &row, `SELECT * FROM standings
WHERE competition = $1 AND season = $2 AND group_name = $3 AND club_source_id = $4
FOR UPDATE`, item.Competition, item.Season, item.Group, item.ClubSourceID)
	switch {
	case isNotFound(err):
		item.Stale = false
		inserted, err := insertIfAbsent(ctx, tx, "standings", "competition, season, group_name, club_source_id", standingToModel(item))
		if err != nil {
			return 0, err
		}
		if !inserted {
			return upsertStanding(ctx, tx, item)
		}
		return reconcile.Inserted, nil
	case err != nil:
		return 0, fmt.Errorf("lock standing: %w", err)
	}

	existing := row.toDomain()
	merged := standing.Merge(existing, item)
	if standing.SameContent(existing, merged) {
		return reconcile.Unchanged, nil
	}
	if err := updateByID(ctx, tx, "standings", existing.ID, standingToModel(merged)); err != nil {
		return 0, err
	}
	return reconcile.Updated, nil
}

func (r *StandingRepository) List(ctx context.Context, competition, season, group string) ([]standing.Row, error) {
	conditions := []qb.Condition{
		qb.Eq("competition", competition),
		qb.Eq("season", season),
		qb.Eq("stale", false),
	}
	if group != "" {
		conditions = append(conditions, qb.Eq("group_name", group))
	}
	query, args, err := qb.Select("*").From("standings").Where(conditions...).
		OrderBy("group_name", "position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StandingRepository) Groups(ctx context.Context, competition, season string) ([]string, error) {
	query, args, err := qb.Select("group_name").Distinct().From("standings").
		Where(
			qb.Eq("competition", competition),
			qb.Eq("season", season),
			qb.Eq("stale", false),
		).
		OrderBy("group_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build standing groups query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select standing groups: %w", err)
	}
	return out, nil
}

func (r *StandingRepository) BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error) {
	return backfillRefs(ctx, r.db, "standings", "club_source_id", "club_id", competition, season, ids)
}
