package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/football-hub/internal/config"
	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/jobrun"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
	cacherepo "github.com/riskibarqy/football-hub/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-hub/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/football-hub/internal/platform/cache"
)

// Store is the set of repositories one process works against.
type Store struct {
	Clubs      club.Repository
	Standings  standing.Repository
	Matches    match.Repository
	Players    player.Repository
	Statistics statistic.Repository
	News       news.Repository
	JobRuns    jobrun.Repository

	db *sqlx.DB
}

// DB is nil for the memory store.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Reset truncates every table. Only the postgres store supports it.
func (s *Store) Reset(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("reset requires STORE_DRIVER=%s", config.StoreDriverPostgres)
	}
	return postgres.NewResetRepository(s.db).Truncate(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenDB opens a traced postgres pool and checks it is reachable.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn, dbName := postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *Store {
	return &Store{
		Clubs:      memory.NewClubRepository(),
		Standings:  memory.NewStandingRepository(),
		Matches:    memory.NewMatchRepository(),
		Players:    memory.NewPlayerRepository(),
		Statistics: memory.NewStatisticRepository(),
		News:       memory.NewNewsRepository(),
		JobRuns:    memory.NewJobRunRepository(),
	}
}

func NewPostgresStore(db *sqlx.DB) *Store {
	return &Store{
		Clubs:      postgres.NewClubRepository(db),
		Standings:  postgres.NewStandingRepository(db),
		Matches:    postgres.NewMatchRepository(db),
		Players:    postgres.NewPlayerRepository(db),
		Statistics: postgres.NewStatisticRepository(db),
		News:       postgres.NewNewsRepository(db),
		JobRuns:    postgres.NewJobRunRepository(db),
		db:         db,
	}
}

// OpenStore picks the store from STORE_DRIVER; forceMemory overrides it.
func OpenStore(ctx context.Context, cfg config.Config, forceMemory bool) (*Store, error) {
	if forceMemory || cfg.StoreDriver == config.StoreDriverMemory {
		return NewMemoryStore(), nil
	}
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewPostgresStore(db), nil
}

// Cached wraps the read paths with a TTL cache. Writes through the returned
// store invalidate the affected keys.
func (s *Store) Cached(ttl time.Duration) *Store {
	cache := basecache.NewStore(ttl)
	return &Store{
		Clubs:      cacherepo.NewClubRepository(s.Clubs, cache),
		Standings:  cacherepo.NewStandingRepository(s.Standings, cache),
		Matches:    cacherepo.NewMatchRepository(s.Matches, cache),
		Players:    cacherepo.NewPlayerRepository(s.Players, cache),
		Statistics: cacherepo.NewStatisticRepository(s.Statistics, cache),
		News:       cacherepo.NewNewsRepository(s.News, cache),
		JobRuns:    s.JobRuns,
		db:         s.db,
	}
}
