package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

const testJobToken = "secret-token"

type testEnvelope[T any] struct {
	APIVersion string     `json:"apiVersion"`
	Data       T          `json:"data"`
	Error      *errorBody `json:"error"`
}

type fakeJobs struct {
	triggered []string
	err       error
	jobs      []usecase.JobStatus
}

func (f *fakeJobs) Trigger(_ context.Context, name string) error {
	f.triggered = append(f.triggered, name)
	return f.err
}

func (f *fakeJobs) Status() usecase.SchedulerStatus {
	return usecase.SchedulerStatus{Running: true, Jobs: f.jobs}
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("connection refused") }

type testServer struct {
	router http.Handler
	jobs   *fakeJobs
}

func newTestServer(t *testing.T, db Pinger, limiter *ClientRateLimiter) testServer {
	t.Helper()
	ctx := context.Background()

	clubs := memory.NewClubRepository()
	standings := memory.NewStandingRepository()
	matches := memory.NewMatchRepository()
	players := memory.NewPlayerRepository()
	statistics := memory.NewStatisticRepository()
	newsRepo := memory.NewNewsRepository()

	reconciler := usecase.NewReconcileService(usecase.ReconcileRepositories{
		Clubs:      clubs,
		Standings:  standings,
		Matches:    matches,
		Players:    players,
		Statistics: statistics,
		News:       newsRepo,
	}, logging.NewNop())

	pl, _ := competition.Lookup("PL")
	if _, err := reconciler.ReconcileStandings(ctx, pl, []standing.Row{
		{ClubSourceID: "9825", TeamName: "Arsenal", Position: 1, Points: 49},
		{ClubSourceID: "8456", TeamName: "Manchester City", Position: 2, Points: 45},
	}); err != nil {
		t.Fatalf("seed standings: %v", err)
	}
	if _, err := reconciler.ReconcileMatches(ctx, pl, []match.Match{
		{SourceID: "4506263", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", Status: match.StatusFinished, HomeScore: match.IntPtr(3), AwayScore: match.IntPtr(1), KickoffAt: time.Date(2026, 1, 3, 15, 0, 0, 0, time.UTC),
			Events: []match.Event{{Type: match.EventGoal, Minute: 9, Side: match.SideHome, Player: "Bukayo Saka"}, {Type: match.EventYellowCard, Minute: 40, Side: match.SideAway, Player: "Moises Caicedo"}}},
	}); err != nil {
		t.Fatalf("seed matches: %v", err)
	}

	registry := competition.NewRegistry("", "")
	reader := usecase.NewReadService(registry, usecase.ReadRepositories{
		Clubs:      clubs,
		Standings:  standings,
		Matches:    matches,
		Players:    players,
		Statistics: statistics,
		News:       newsRepo,
	})
	chat := usecase.NewChatService(registry.All(), usecase.ChatRepositories{
		Clubs:      clubs,
		Standings:  standings,
		Matches:    matches,
		Statistics: statistics,
		News:       newsRepo,
	}, nil, logging.NewNop())

	jobs := &fakeJobs{jobs: []usecase.JobStatus{{ID: usecase.JobStandings, Schedule: "@every 1h"}}}
	handler := NewHandler(reader, chat, jobs, db, limiter, logging.NewNop())
	return testServer{
		router: NewRouter(handler, RouterConfig{
			Logger:           logging.NewNop(),
			CORSOrigins:      []string{"*"},
			InternalJobToken: testJobToken,
		}),
		jobs: jobs,
	}
}

func (s testServer) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()
	var out testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body: %v: %s", err, rec.Body.String())
	}
	return out
}

func TestRouter_SystemRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, nil)
	if rec := srv.do(t, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz without database expected 200, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/metrics", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("metrics expected 200, got %d", rec.Code)
	}

	failing := newTestServer(t, failingPinger{}, nil)
	rec := failing.do(t, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz with failing database expected 503, got %d", rec.Code)
	}
}

func TestRouter_Standings(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodGet, "/v1/standings?league=pl", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[standingsTableDTO](t, rec)
	if body.Data.Competition != "PL" || len(body.Data.Rows) != 2 {
		t.Fatalf("unexpected table: %+v", body.Data)
	}
	if body.Data.Rows[0].TeamName != "Arsenal" || body.Data.Rows[0].Points != 49 {
		t.Fatalf("unexpected leader: %+v", body.Data.Rows[0])
	}
}

func TestRouter_InvalidQueries(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, nil)
	targets := []string{
		"/v1/standings?league=SERIEA",
		"/v1/standings?season=25-26",
		"/v1/matches?per_page=101",
		"/v1/matches?page=-1",
		"/v1/matches/upcoming?limit=21",
		"/v1/matches/abc",
		"/v1/statistics/players?sort=tackles",
		"/v1/clubs/search?q=a",
	}
	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, target, "", nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			body := decodeEnvelope[any](t, rec)
			if body.Error == nil || body.Error.Errors[0].Reason != "invalidInput" {
				t.Fatalf("unexpected error body: %s", rec.Body.String())
			}
		})
	}
}

func TestRouter_MatchByID(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodGet, "/v1/matches/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[matchDetailDTO](t, rec)
	if body.Data.SourceID != "4506263" || body.Data.Status != "FINISHED" || *body.Data.Score.Home != 3 {
		t.Fatalf("unexpected match: %+v", body.Data)
	}
	if len(body.Data.Events) != 2 || body.Data.Events[0].Type != "goal" || body.Data.Events[1].Side != "away" {
		t.Fatalf("unexpected events: %+v", body.Data.Events)
	}

	if rec := srv.do(t, http.MethodGet, "/v1/matches/999", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_MatchesPage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, nil)
	rec := srv.do(t, http.MethodGet, "/v1/matches?status=finished", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[pageDTO[matchDTO]](t, rec)
	if body.Data.Total != 1 || len(body.Data.Items) != 1 || body.Data.Page != 1 {
		t.Fatalf("unexpected page: %+v", body.Data)
	}
}

func TestRouter_Chat(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, NewClientRateLimiter(1, 1))
	rec := srv.do(t, http.MethodPost, "/v1/chat/message", `{"message":"bxh","league":"PL"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[usecase.ChatReply](t, rec)
	if body.Data.Source != usecase.ChatSourceKeyword || !strings.Contains(body.Data.Reply, "Arsenal") {
		t.Fatalf("unexpected reply: %+v", body.Data)
	}

	rec = srv.do(t, http.MethodPost, "/v1/chat/message", `{"message":"again"}`, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the burst, got %d", rec.Code)
	}
}

func TestRouter_ChatRejectsBadPayload(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil, nil)
	payloads := []string{
		`{"message":`,
		`{"message":"hi","unknown":true}`,
		`{"message":""}`,
		`{"message":"hi","history":[{"role":"system","content":"x"}]}`,
	}
	for i, payload := range payloads {
		t.Run(fmt.Sprintf("payload-%d", i), func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/v1/chat/message", payload, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_InternalJobs(t *testing.T) {
	t.Parallel()

	auth := map[string]string{"X-Internal-Job-Token": testJobToken}

	t.Run("missing token", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)
		if rec := srv.do(t, http.MethodGet, "/v1/internal/jobs/status", "", nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("trigger by alias", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)
		rec := srv.do(t, http.MethodPost, "/v1/internal/jobs/standings/trigger", "", auth)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope[jobTriggerDTO](t, rec)
		if body.Data.Status != "completed" || body.Data.Job.ID != usecase.JobStandings {
			t.Fatalf("unexpected trigger response: %+v", body.Data)
		}
		if len(srv.jobs.triggered) != 1 || srv.jobs.triggered[0] != usecase.JobStandings {
			t.Fatalf("unexpected triggered jobs: %v", srv.jobs.triggered)
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)
		for _, name := range []string{"transfers", "news"} {
			if rec := srv.do(t, http.MethodPost, "/v1/internal/jobs/"+name+"/trigger", "", auth); rec.Code != http.StatusNotFound {
				t.Fatalf("job %q expected 404, got %d", name, rec.Code)
			}
		}
	})

	t.Run("already running", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)
		srv.jobs.err = fmt.Errorf("%w: job=standings", usecase.ErrJobRunning)
		if rec := srv.do(t, http.MethodPost, "/v1/internal/jobs/standings/trigger", "", auth); rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("failed run", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)
		srv.jobs.err = errors.New("upstream timeout")
		rec := srv.do(t, http.MethodPost, "/v1/internal/jobs/standings/trigger", "", auth)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := decodeEnvelope[jobTriggerDTO](t, rec); body.Data.Status != "failed" {
			t.Fatalf("unexpected outcome: %+v", body.Data)
		}
	})

	t.Run("status", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)
		rec := srv.do(t, http.MethodGet, "/v1/internal/jobs/status", "", auth)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeEnvelope[usecase.SchedulerStatus](t, rec)
		if !body.Data.Running || len(body.Data.Jobs) != 1 {
			t.Fatalf("unexpected status: %+v", body.Data)
		}
	})
}

func TestNormalizeIP(t *testing.T) {
	tests := map[string]string{
		"203.0.113.7, 10.0.0.1": "203.0.113.7",
		"192.0.2.1:5678":        "192.0.2.1",
		"[2001:db8::1]:443":     "2001:db8::1",
		"not-an-ip":             "",
		"":                      "",
	}
	for in, want := range tests {
		if got := normalizeIP(in); got != want {
			t.Fatalf("normalizeIP(%q)=%q want=%q", in, got, want)
		}
	}
}
