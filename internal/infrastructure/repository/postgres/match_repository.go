package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	qb "github.com/riskibarqy/football-hub/internal/platform/querybuilder"
)

var liveStatuses = []string{string(match.StatusLive), string(match.StatusHalftime)}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) UpsertMatches(ctx context.Context, items []match.Match) (reconcile.BatchResult, error) {
	return writeBatch(ctx, r.db, "matches", items, func(m match.Match) string {
		return m.Key().String()
	}, upsertMatch)
}

func upsertMatch(ctx context.Context, tx *sqlx.Tx, item match.Match) (reconcile.Outcome, error) {
	var row matchTableModel
	err := tx.GetContext(ctx, &row, `SELECT * FROM matches
WHERE competition = $1 AND source_id = $2
FOR UPDATE`, item.Competition, item.SourceID)
	switch {
	case isNotFound(err):
		model, err := matchToModel(item)
		if err != nil {
			return 0, err
		}
		inserted, err := insertIfAbsent(ctx, tx, "matches", "competition, source_id", model)
		if err != nil {
			return 0, err
		}
		if !inserted {
			return upsertMatch(ctx, tx, item)
		}
		return reconcile.Inserted, nil
	case err != nil:
		return 0, fmt.Errorf("lock match: %w", err)
	}

	existing, err := row.toDomain()
	if err != nil {
		return 0, err
	}
	merged := match.Merge(existing, item)
	if match.SameContent(existing, merged) {
		return reconcile.Unchanged, nil
	}
	// A finished row only accepts a finished write.
	guard := qb.Expr("(status <> ? OR ? = ?)", string(match.StatusFinished), string(merged.Status), string(match.StatusFinished))
	model, err := matchToModel(merged)
	if err != nil {
		return 0, err
	}
	if err := updateByID(ctx, tx, "matches", existing.ID, model, guard); err != nil {
		return 0, err
	}
	return reconcile.Updated, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").Where(qb.Eq("id", id)).Limit(1).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match id=%d: %w", id, err)
	}
	m, err := row.toDomain()
	if err != nil {
		return match.Match{}, false, err
	}
	return m, true, nil
}

func (r *MatchRepository) GetBySourceIDs(ctx context.Context, competition string, sourceIDs []string) ([]match.Match, error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("competition", competition), qb.In("source_id", sourceIDs)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by source ids query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, int, error) {
	var conditions []qb.Condition
	if filter.Competition != "" {
		conditions = append(conditions, qb.Eq("competition", filter.Competition))
	}
	if filter.Season != "" {
		conditions = append(conditions, qb.Eq("season", filter.Season))
	}
	if filter.Matchweek > 0 {
		conditions = append(conditions, qb.Eq("matchweek", filter.Matchweek))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		conditions = append(conditions, qb.In("status", statuses))
	}

	b := qb.Select("*").From("matches").Where(conditions...).OrderBy("kickoff_at", "id")
	countQuery, countArgs, err := b.CountSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count matches query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}

	query, args, err := b.Page(filter.Page, perPageOrDefault(filter.PerPage, 20)).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list matches query: %w", err)
	}
	out, err := r.selectMatches(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MatchRepository) ListLive(ctx context.Context, competition string) ([]match.Match, error) {
	conditions := []qb.Condition{qb.In("status", liveStatuses)}
	if competition != "" {
		conditions = append(conditions, qb.Eq("competition", competition))
	}
	query, args, err := qb.Select("*").From("matches").Where(conditions...).OrderBy("kickoff_at", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build live matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) Upcoming(ctx context.Context, competition string, now time.Time, limit int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("competition", competition),
			qb.Eq("status", string(match.StatusScheduled)),
			qb.Gte("kickoff_at", now.UTC()),
		).
		OrderBy("kickoff_at", "id").
		Limit(perPageOrDefault(limit, 10)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build upcoming matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) Results(ctx context.Context, competition string, matchweek, limit int) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Eq("competition", competition),
		qb.Eq("status", string(match.StatusFinished)),
	}
	if matchweek > 0 {
		conditions = append(conditions, qb.Eq("matchweek", matchweek))
	}
	query, args, err := qb.Select("*").From("matches").Where(conditions...).
		OrderBy("kickoff_at DESC", "id").
		Limit(perPageOrDefault(limit, 10)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build results query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) Rounds(ctx context.Context, competition, season string) ([]match.Round, error) {
	conditions := []qb.Condition{qb.Eq("competition", competition), qb.Gt("matchweek", 0)}
	if season != "" {
		conditions = append(conditions, qb.Eq("season", season))
	}
	query, args, err := qb.Select("matchweek", "round").Distinct().From("matches").
		Where(conditions...).
		OrderBy("matchweek", "round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build rounds query: %w", err)
	}

	var rows []struct {
		Matchweek int    `db:"matchweek"`
		Round     string `db:"round"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rounds: %w", err)
	}

	out := make([]match.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Round{Matchweek: row.Matchweek, Round: row.Round})
	}
	return out, nil
}

func (r *MatchRepository) ListKnockout(ctx context.Context, competition, season string) ([]match.Match, error) {
	conditions := []qb.Condition{qb.Eq("competition", competition), qb.Eq("is_knockout", true)}
	if season != "" {
		conditions = append(conditions, qb.Eq("season", season))
	}
	query, args, err := qb.Select("*").From("matches").Where(conditions...).OrderBy("kickoff_at", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build knockout matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) HasActivity(ctx context.Context, from, to time.Time) (bool, error) {
	var active bool
	err := r.db.GetContext(ctx, &active, `SELECT EXISTS (
    SELECT 1 FROM matches
    WHERE status = ANY($1)
       OR (status = $2 AND kickoff_at BETWEEN $3 AND $4)
)`, pqStrings(liveStatuses), string(match.StatusScheduled), from.UTC(), to.UTC())
	if err != nil {
		return false, fmt.Errorf("check match activity: %w", err)
	}
	return active, nil
}

func (r *MatchRepository) ListOverdueLive(ctx context.Context, kickoffBefore time.Time) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.In("status", liveStatuses), qb.Lte("kickoff_at", kickoffBefore.UTC())).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build overdue live matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error) {
	home, err := backfillRefs(ctx, r.db, "matches", "home_source_id", "home_club_id", competition, season, ids)
	if err != nil {
		return 0, err
	}
	away, err := backfillRefs(ctx, r.db, "matches", "away_source_id", "away_club_id", competition, season, ids)
	if err != nil {
		return home, err
	}
	return home + away, nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
