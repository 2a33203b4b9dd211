package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/football-hub/internal/config"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		StoreDriver:        config.StoreDriverMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CompetitionCodes:   []string{"PL", "UCL"},
		SchedulerWorkers:   2,
		SchedulerTimezone:  time.UTC,
		ChatRatePerMinute:  20,
		ChatRateBurst:      5,
	}
}

func TestNew_MemoryStore(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop(), Options{Scheduler: true})
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer a.Close()

	if a.Store.DB() != nil {
		t.Fatalf("memory store should not hold a db pool")
	}
	if len(a.Competitions) != 2 {
		t.Fatalf("expected two competitions, got %d", len(a.Competitions))
	}
	if a.Scheduler == nil {
		t.Fatalf("expected scheduler to be built")
	}
	if err := a.Store.Reset(context.Background()); err == nil {
		t.Fatalf("expected reset to be rejected for the memory store")
	}

	srv, err := a.HTTPServer()
	if err != nil {
		t.Fatalf("build http server: %v", err)
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected healthz status: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("memory store should always be ready, got %d", rec.Code)
	}
}

func TestNew_CompetitionFilter(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop(), Options{Competitions: []string{"ucl"}})
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if len(a.Competitions) != 1 || a.Competitions[0].Code != "UCL" {
		t.Fatalf("unexpected competitions: %+v", a.Competitions)
	}
	if a.Scheduler != nil {
		t.Fatalf("scheduler should only be built on request")
	}

	if _, err := New(context.Background(), memoryConfig(), logging.NewNop(), Options{Competitions: []string{"SERIEA"}}); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown competition, got %v", err)
	}
}

func TestRunJob_UnknownJob(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop(), Options{})
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if _, err := a.RunJob(context.Background(), "transfers"); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSummary_EmptyMemoryStore(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop(), Options{})
	if err != nil {
		t.Fatalf("build app: %v", err)
	}

	rows, err := a.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected one row per competition, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Clubs != 0 || row.Standings != 0 || row.Matches != 0 || row.Players != 0 || row.News != 0 {
			t.Fatalf("expected empty counts, got %+v", row)
		}
		if row.Season == "" {
			t.Fatalf("expected season on %s", row.Competition)
		}
	}
}
