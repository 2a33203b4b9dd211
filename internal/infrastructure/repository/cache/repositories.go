package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/reconcile"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
	basecache "github.com/riskibarqy/football-hub/internal/platform/cache"
)

const (
	clubPrefix      = "clubs:"
	standingPrefix  = "standings:"
	matchPrefix     = "matches:"
	playerPrefix    = "players:"
	statisticPrefix = "statistics:"
	newsPrefix      = "news:"
)

type lookup[T any] struct {
	value  T
	exists bool
}

type page[T any] struct {
	items []T
	total int
}

func loadLookup[T any](ctx context.Context, store *basecache.Store, key string, next func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := basecache.Load(ctx, store, key, func(ctx context.Context) (lookup[T], error) {
		value, exists, err := next(ctx)
		if err != nil {
			return lookup[T]{}, err
		}
		return lookup[T]{value: value, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.value, v.exists, nil
}

func loadList[T any](ctx context.Context, store *basecache.Store, key string, next func(context.Context) ([]T, error)) ([]T, error) {
	items, err := basecache.Load(ctx, store, key, func(ctx context.Context) ([]T, error) {
		items, err := next(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

func loadPage[T any](ctx context.Context, store *basecache.Store, key string, next func(context.Context) ([]T, int, error)) ([]T, int, error) {
	p, err := basecache.Load(ctx, store, key, func(ctx context.Context) (page[T], error) {
		items, total, err := next(ctx)
		if err != nil {
			return page[T]{}, err
		}
		return page[T]{items: append([]T(nil), items...), total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return append([]T(nil), p.items...), p.total, nil
}

// invalidateAfter drops prefixes once a write changed something.
func invalidateAfter(ctx context.Context, store *basecache.Store, res reconcile.BatchResult, prefixes ...string) {
	if res.Inserted+res.Updated > 0 {
		store.Invalidate(ctx, prefixes...)
	}
}

func invalidateIfTouched(ctx context.Context, store *basecache.Store, touched int, prefixes ...string) {
	if touched > 0 {
		store.Invalidate(ctx, prefixes...)
	}
}

type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) UpsertClubs(ctx context.Context, items []club.Club) (reconcile.BatchResult, error) {
	res, err := r.next.UpsertClubs(ctx, items)
	invalidateAfter(ctx, r.cache, res, clubPrefix)
	return res, err
}

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (club.Club, bool, error) {
	return loadLookup(ctx, r.cache, clubPrefix+"id:"+strconv.FormatInt(id, 10), func(ctx context.Context) (club.Club, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *ClubRepository) GetBySourceID(ctx context.Context, competition, season, sourceID string) (club.Club, bool, error) {
	return r.next.GetBySourceID(ctx, competition, season, sourceID)
}

func (r *ClubRepository) ListByCompetition(ctx context.Context, competition, season string) ([]club.Club, error) {
	key := clubPrefix + "list:" + competition + ":" + season
	return loadList(ctx, r.cache, key, func(ctx context.Context) ([]club.Club, error) {
		return r.next.ListByCompetition(ctx, competition, season)
	})
}

func (r *ClubRepository) Search(ctx context.Context, query, competition string, limit int) ([]club.Club, error) {
	return r.next.Search(ctx, query, competition, limit)
}

func (r *ClubRepository) IDsBySourceID(ctx context.Context, competition, season string) (map[string]int64, error) {
	return r.next.IDsBySourceID(ctx, competition, season)
}

type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) ReplaceStandings(ctx context.Context, competition, season string, rows []standing.Row) (reconcile.BatchResult, error) {
	res, err := r.next.ReplaceStandings(ctx, competition, season, rows)
	// Stale marking can change the table even when every row is unchanged.
	r.cache.Invalidate(ctx, standingPrefix+competition+":")
	return res, err
}

func (r *StandingRepository) List(ctx context.Context, competition, season, group string) ([]standing.Row, error) {
	key := standingPrefix + competition + ":list:" + season + ":" + group
	return loadList(ctx, r.cache, key, func(ctx context.Context) ([]standing.Row, error) {
		return r.next.List(ctx, competition, season, group)
	})
}

func (r *StandingRepository) Groups(ctx context.Context, competition, season string) ([]string, error) {
	key := standingPrefix + competition + ":groups:" + season
	return loadList(ctx, r.cache, key, func(ctx context.Context) ([]string, error) {
		return r.next.Groups(ctx, competition, season)
	})
}

func (r *StandingRepository) BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error) {
	n, err := r.next.BackfillClubRefs(ctx, competition, season, ids)
	invalidateIfTouched(ctx, r.cache, n, standingPrefix+competition+":")
	return n, err
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) UpsertMatches(ctx context.Context, items []match.Match) (reconcile.BatchResult, error) {
	res, err := r.next.UpsertMatches(ctx, items)
	invalidateAfter(ctx, r.cache, res, matchPrefix)
	return res, err
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	return loadLookup(ctx, r.cache, matchPrefix+"id:"+strconv.FormatInt(id, 10), func(ctx context.Context) (match.Match, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *MatchRepository) GetBySourceIDs(ctx context.Context, competition string, sourceIDs []string) ([]match.Match, error) {
	return r.next.GetBySourceIDs(ctx, competition, sourceIDs)
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, int, error) {
	key := fmt.Sprintf("%slist:%s:%s:%v:%d:%d:%d", matchPrefix, filter.Competition, filter.Season, filter.Statuses, filter.Matchweek, filter.Page, filter.PerPage)
	return loadPage(ctx, r.cache, key, func(ctx context.Context) ([]match.Match, int, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *MatchRepository) ListLive(ctx context.Context, competition string) ([]match.Match, error) {
	return loadList(ctx, r.cache, matchPrefix+"live:"+competition, func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListLive(ctx, competition)
	})
}

// Upcoming depends on the caller's clock, so it is never cached.
func (r *MatchRepository) Upcoming(ctx context.Context, competition string, now time.Time, limit int) ([]match.Match, error) {
	return r.next.Upcoming(ctx, competition, now, limit)
}

func (r *MatchRepository) Results(ctx context.Context, competition string, matchweek, limit int) ([]match.Match, error) {
	key := fmt.Sprintf("%sresults:%s:%d:%d", matchPrefix, competition, matchweek, limit)
	return loadList(ctx, r.cache, key, func(ctx context.Context) ([]match.Match, error) {
		return r.next.Results(ctx, competition, matchweek, limit)
	})
}

func (r *MatchRepository) Rounds(ctx context.Context, competition, season string) ([]match.Round, error) {
	return loadList(ctx, r.cache, matchPrefix+"rounds:"+competition+":"+season, func(ctx context.Context) ([]match.Round, error) {
		return r.next.Rounds(ctx, competition, season)
	})
}

func (r *MatchRepository) ListKnockout(ctx context.Context, competition, season string) ([]match.Match, error) {
	return loadList(ctx, r.cache, matchPrefix+"knockout:"+competition+":"+season, func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListKnockout(ctx, competition, season)
	})
}

func (r *MatchRepository) HasActivity(ctx context.Context, from, to time.Time) (bool, error) {
	return r.next.HasActivity(ctx, from, to)
}

func (r *MatchRepository) ListOverdueLive(ctx context.Context, kickoffBefore time.Time) ([]match.Match, error) {
	return r.next.ListOverdueLive(ctx, kickoffBefore)
}

func (r *MatchRepository) BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error) {
	n, err := r.next.BackfillClubRefs(ctx, competition, season, ids)
	invalidateIfTouched(ctx, r.cache, n, matchPrefix)
	return n, err
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) UpsertPlayers(ctx context.Context, items []player.Player) (reconcile.BatchResult, error) {
	res, err := r.next.UpsertPlayers(ctx, items)
	invalidateAfter(ctx, r.cache, res, playerPrefix)
	return res, err
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	return loadLookup(ctx, r.cache, playerPrefix+"id:"+strconv.FormatInt(id, 10), func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, int, error) {
	key := fmt.Sprintf("%slist:%s:%s:%s:%d:%d:%d", playerPrefix, filter.Competition, filter.Season, filter.Position, filter.ClubID, filter.Page, filter.PerPage)
	return loadPage(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, int, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *PlayerRepository) Search(ctx context.Context, query, competition string, limit int) ([]player.Player, error) {
	return r.next.Search(ctx, query, competition, limit)
}

func (r *PlayerRepository) IDsBySourceID(ctx context.Context, competition, season string) (map[string]int64, error) {
	return r.next.IDsBySourceID(ctx, competition, season)
}

func (r *PlayerRepository) BackfillClubRefs(ctx context.Context, competition, season string, ids map[string]int64) (int, error) {
	n, err := r.next.BackfillClubRefs(ctx, competition, season, ids)
	invalidateIfTouched(ctx, r.cache, n, playerPrefix)
	return n, err
}

type StatisticRepository struct {
	next  statistic.Repository
	cache *basecache.Store
}

func NewStatisticRepository(next statistic.Repository, cache *basecache.Store) *StatisticRepository {
	return &StatisticRepository{next: next, cache: cache}
}

func (r *StatisticRepository) UpsertStatistics(ctx context.Context, items []statistic.Statistic) (reconcile.BatchResult, error) {
	res, err := r.next.UpsertStatistics(ctx, items)
	invalidateAfter(ctx, r.cache, res, statisticPrefix)
	return res, err
}

func (r *StatisticRepository) Top(ctx context.Context, filter statistic.Filter) ([]statistic.Statistic, int, error) {
	key := fmt.Sprintf("%stop:%s:%s:%s:%s:%d:%d", statisticPrefix, filter.Competition, filter.Season, filter.Sort, filter.Position, filter.Page, filter.PerPage)
	return loadPage(ctx, r.cache, key, func(ctx context.Context) ([]statistic.Statistic, int, error) {
		return r.next.Top(ctx, filter)
	})
}

type NewsRepository struct {
	next  news.Repository
	cache *basecache.Store
}

func NewNewsRepository(next news.Repository, cache *basecache.Store) *NewsRepository {
	return &NewsRepository{next: next, cache: cache}
}

func (r *NewsRepository) InsertNews(ctx context.Context, items []news.Item) (reconcile.BatchResult, error) {
	res, err := r.next.InsertNews(ctx, items)
	invalidateAfter(ctx, r.cache, res, newsPrefix)
	return res, err
}

func (r *NewsRepository) GetByID(ctx context.Context, id int64) (news.Item, bool, error) {
	return loadLookup(ctx, r.cache, newsPrefix+"id:"+strconv.FormatInt(id, 10), func(ctx context.Context) (news.Item, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *NewsRepository) List(ctx context.Context, filter news.Filter) ([]news.Item, int, error) {
	key := fmt.Sprintf("%slist:%s:%s:%s:%d:%d", newsPrefix, filter.Competition, filter.Category, filter.Query, filter.Page, filter.PerPage)
	return loadPage(ctx, r.cache, key, func(ctx context.Context) ([]news.Item, int, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *NewsRepository) Latest(ctx context.Context, competition string, limit int) ([]news.Item, error) {
	key := fmt.Sprintf("%slatest:%s:%d", newsPrefix, competition, limit)
	return loadList(ctx, r.cache, key, func(ctx context.Context) ([]news.Item, error) {
		return r.next.Latest(ctx, competition, limit)
	})
}

func (r *NewsRepository) Search(ctx context.Context, query, competition string, limit int) ([]news.Item, error) {
	return r.next.Search(ctx, query, competition, limit)
}
