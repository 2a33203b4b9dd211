package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	qb "github.com/riskibarqy/football-hub/internal/platform/querybuilder"
)

type NewsRepository struct {
	db *sqlx.DB
}

func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) InsertNews(ctx context.Context, items []news.Item) (reconcile.BatchResult, error) {
	return writeBatch(ctx, r.db, "news", items, func(item news.Item) string {
		return item.SourceID
	}, insertNewsItem)
}

func insertNewsItem(ctx context.Context, tx *sqlx.Tx, item news.Item) (reconcile.Outcome, error) {
	inserted, err := insertIfAbsent(ctx, tx, "news", "source_id", newsToModel(item))
	if err != nil {
		return 0, err
	}
	if !inserted {
		return reconcile.Unchanged, nil
	}
	return reconcile.Inserted, nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id int64) (news.Item, bool, error) {
	query, args, err := qb.Select("*").From("news").Where(qb.Eq("id", id)).Limit(1).ToSQL()
	if err != nil {
		return news.Item{}, false, fmt.Errorf("build select news query: %w", err)
	}

	var row newsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return news.Item{}, false, nil
		}
		return news.Item{}, false, fmt.Errorf("select news id=%d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

func (r *NewsRepository) List(ctx context.Context, filter news.Filter) ([]news.Item, int, error) {
	conditions := newsConditions(filter.Competition, filter.Query)
	if filter.Category != "" {
		conditions = append(conditions, qb.Eq("category", filter.Category))
	}

	b := qb.Select("*").From("news").Where(conditions...).OrderBy("published_at DESC", "id DESC")
	countQuery, countArgs, err := b.CountSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count news query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count news: %w", err)
	}

	query, args, err := b.Page(filter.Page, perPageOrDefault(filter.PerPage, 20)).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list news query: %w", err)
	}
	out, err := r.selectNews(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *NewsRepository) Latest(ctx context.Context, competition string, limit int) ([]news.Item, error) {
	query, args, err := qb.Select("*").From("news").Where(newsConditions(competition, "")...).
		OrderBy("published_at DESC", "id DESC").
		Limit(perPageOrDefault(limit, 10)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build latest news query: %w", err)
	}
	return r.selectNews(ctx, query, args)
}

func (r *NewsRepository) Search(ctx context.Context, query, competition string, limit int) ([]news.Item, error) {
	sqlQuery, args, err := qb.Select("*").From("news").Where(newsConditions(competition, query)...).
		OrderBy("published_at DESC", "id DESC").
		Limit(perPageOrDefault(limit, 10)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search news query: %w", err)
	}
	return r.selectNews(ctx, sqlQuery, args)
}

func newsConditions(competition, query string) []qb.Condition {
	var conditions []qb.Condition
	if competition != "" {
		conditions = append(conditions, qb.Eq("competition", competition))
	}
	if query != "" {
		conditions = append(conditions, qb.Or(qb.ILike("title", query), qb.ILike("excerpt", query)))
	}
	return conditions
}

func (r *NewsRepository) selectNews(ctx context.Context, query string, args []any) ([]news.Item, error) {
	var rows []newsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select news: %w", err)
	}

	out := make([]news.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
