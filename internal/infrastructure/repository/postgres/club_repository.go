package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	qb "github.com/riskibarqy/football-hub/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) UpsertClubs(ctx context.Context, items []club.Club) (reconcile.BatchResult, error) {
	return writeBatch(ctx, r.db, "clubs", items, func(c club.Club) string {
		return c.Key().String()
	}, upsertClub)
}

func upsertClub(ctx context.Context, tx *sqlx.Tx, item club.Club) (reconcile.Outcome, error) {
	var row clubTableModel
	err := tx.GetContext(ctx, &row, `SELECT * FROM clubs
WHERE competition = $1 AND season = $2 AND source_id = $3
FOR UPDATE`, item.Competition, item.Season, item.SourceID)
	switch {
	case isNotFound(err):
		inserted, err := insertIfAbsent(ctx, tx, "clubs", "competition, season, source_id", clubToModel(item))
		if err != nil {
			return 0, err
		}
		if !inserted {
			return upsertClub(ctx, tx, item)
		}
		return reconcile.Inserted, nil
	case err != nil:
		return 0, fmt.Errorf("lock club: %w", err)
	}

	existing := row.toDomain()
	merged := club.Merge(existing, item)
	if club.SameContent(existing, merged) {
		return reconcile.Unchanged, nil
	}
	if err := updateByID(ctx, tx, "clubs", existing.ID, clubToModel(merged)); err != nil {
		return 0, err
	}
	return reconcile.Updated, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (club.Club, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *ClubRepository) GetBySourceID(ctx context.Context, competition, season, sourceID string) (club.Club, bool, error) {
	return r.getOne(ctx,
		qb.Eq("competition", competition),
		qb.Eq("season", season),
		qb.Eq("source_id", sourceID),
	)
}

func (r *ClubRepository) getOne(ctx context.Context, conditions ...qb.Condition) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").Where(conditions...).Limit(1).ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build select club query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("select club: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ClubRepository) ListByCompetition(ctx context.Context, competition, season string) ([]club.Club, error) {
	conditions := []qb.Condition{qb.Eq("competition", competition)}
	if season != "" {
		conditions = append(conditions, qb.Eq("season", season))
	}
	query, args, err := qb.Select("*").From("clubs").Where(conditions...).OrderBy("name", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs query: %w", err)
	}
	return r.selectClubs(ctx, query, args)
}

func (r *ClubRepository) Search(ctx context.Context, query, competition string, limit int) ([]club.Club, error) {
	conditions := []qb.Condition{qb.Or(qb.ILike("name", query), qb.ILike("short_name", query))}
	if competition != "" {
		conditions = append(conditions, qb.Eq("competition", competition))
	}
	sqlQuery, args, err := qb.Select("*").From("clubs").Where(conditions...).
		OrderBy("name", "id").
		Limit(perPageOrDefault(limit, 10)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search clubs query: %w", err)
	}
	return r.selectClubs(ctx, sqlQuery, args)
}

func (r *ClubRepository) IDsBySourceID(ctx context.Context, competition, season string) (map[string]int64, error) {
	query, args, err := qb.Select("source_id", "id").From("clubs").
		Where(qb.Eq("competition", competition), qb.Eq("season", season)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build club ids query: %w", err)
	}

	var rows []struct {
		SourceID string `db:"source_id"`
		ID       int64  `db:"id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select club ids: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.SourceID] = row.ID
	}
	return out, nil
}

func (r *ClubRepository) selectClubs(ctx context.Context, query string, args []any) ([]club.Club, error) {
	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
