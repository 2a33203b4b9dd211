package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	qb "github.com/riskibarqy/football-hub/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) UpsertPlayers(ctx context.Context, items []player.Player) (reconcile.BatchResult, error) {
	return writeBatch(ctx, r.db, "players", items, func(p player.Player) string {
		return p.Key().String()
	}, upsertPlayer)
}

func upsertPlayer(ctx context.Context, tx *sqlx.Tx, item player.Player) (reconcile.Outcome, error) {
	var row playerTableModel
	err := tx.GetContext(ctx, &row, `SELECT * FROM players
WHERE competition = $1 AND season = $2 AND source_id = $3
FOR UPDATE`, item.Competition, item.Season, item.SourceID)
	switch {
	case isNotFound(err):
		inserted, err := insertIfAbsent(ctx, tx, "players", "competition, season, source_id", playerToModel(item))
		if err != nil {
			return 0, err
		}
		if !inserted {
			return upsertPlayer(ctx, tx, item)
		}
		return reconcile.Inserted, nil
	case err != nil:
		return 0, fmt.Errorf("lock player: %w", err)
	}

	existing := row.toDomain()
	merged := player.Merge(existing, item)
	if player.SameContent(existing, merged) {
		return reconcile.Unchanged, nil
	}
	if err := updateByID(ctx, tx, "players", existing.ID, playerToModel(merged)); err != nil {
		return 0, err
	}
	return reconcile.Updated, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").Where(qb.Eq("id", id)).Limit(1).ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player id=%d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, int, error) {
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
	if filter.ClubID > 0 {
		conditions = append(conditions, qb.Eq("club_id", filter.ClubID))
	}

	b := qb.Select("*").From("players").Where(conditions...).OrderBy("name", "id")
	countQuery, countArgs, err := b.CountSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count players query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count players: %w", err)
	}

	query, args, err := b.Page(filter.Page, perPageOrDefault(filter.PerPage, 20)).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list players query: %w", err)
	}
	out, err := r.selectPlayers(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PlayerRepository) Search(ctx context.Context, query, competition string, limit int) ([]player.Player, error) {
	conditions := []qb.Condition{qb.ILike("name", query)}
	if competition != "" {
		conditions = append(conditions, qb.Eq("competition", competition))
	}
	sqlQuery, args, err := qb.Select("*").From("players").Where(conditions...).
		OrderBy("name", "id").
		Limit(perPageOrDefault(limit, 10)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search players query: %w", err)
	}
	return r.selectPlayers(ctx, sqlQuery, args)
}

func (r *PlayerRepository) IDsBySourceID(ctx context.Context, competition, season string) (map[string]int64, error) {
	query, args, err := qb.Select("source_id", "id").From("players").
		Where(qb.Eq("competition", competition), qb.Eq("season", season)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build player ids query: %w", err)
	}

	var rows []struct {
		SourceID string `db:"source_id"`
		ID       int64  `db:"id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player ids: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.SourceID] = row.ID
	}
	return out, nil
}

func (r *PlayerRepository) BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error) {
	return backfillRefs(ctx, r.db, "players", "club_source_id", "club_id", competition, season, ids)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
