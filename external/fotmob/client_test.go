package fotmob

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

const leagueFixture = `{
  "table": [{"data": {"table": {"all": [
    {"id": 9825, "name": "Arsenal", "shortName": "ARS", "idx": 1, "played": 20, "wins": 15, "draws": 4, "losses": 1,
     "scoresStr": "40-12", "goalConDiff": 28, "pts": 49, "qualColor": "#2ad572", "form": ["W","D","L","W","W","W"]},
    {"id": 8456, "name": "Manchester City", "shortName": "MCI", "idx": 2, "played": 20, "wins": 14, "draws": 4, "losses": 2,
     "scoresStr": "44-18", "pts": 46}
  ]}}}],
  "fixtures": {"allMatches": [
    {"id": 4506001, "round": "21", "home": {"id": 9825, "name": "Arsenal"}, "away": {"id": 8456, "name": "Manchester City"},
     "status": {"utcTime": "2026-01-18T16:30:00Z", "started": true, "finished": true, "scoreStr": "2 - 1"}},
    {"id": 4506002, "round": "22", "home": {"id": 8456, "name": "Manchester City"}, "away": {"id": 9825, "name": "Arsenal"},
     "status": {"utcTime": "2026-01-25T16:30:00Z", "started": false, "finished": false}}
  ]}
}`

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		HTTPClient:   srv.Client(),
		BaseURL:      srv.URL,
		StatsBaseURL: srv.URL + "/stats",
		MaxRetries:   2,
		Logger:       logging.NewNop(),
	})
}

func TestClient_FetchStandings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leagues" || r.URL.Query().Get("id") != "47" {
			http.NotFound(w, r)
			return
		}
		if !strings.Contains(r.Header.Get("User-Agent"), "Mozilla") {
			t.Errorf("missing browser user agent: %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(leagueFixture))
	}))
	defer srv.Close()

	pl, _ := competition.Lookup("PL")
	rows, err := newTestClient(t, srv).FetchStandings(context.Background(), pl)
	if err != nil {
		t.Fatalf("fetch standings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("unexpected rows: %d", len(rows))
	}

	top := rows[0]
	if top.ClubSourceID != "9825" || top.Position != 1 || top.Points != 49 {
		t.Fatalf("unexpected top row: %+v", top)
	}
	if top.GoalsFor != 40 || top.GoalsAgainst != 12 || top.GoalDifference != 28 {
		t.Fatalf("unexpected goals: %+v", top)
	}
	if top.Zone != standing.ZoneAdvances || top.ZoneLabel != "Champions League" {
		t.Fatalf("unexpected zone: %s %q", top.Zone, top.ZoneLabel)
	}
	if top.Form != "DLWWW" {
		t.Fatalf("unexpected form: %q", top.Form)
	}
	if rows[1].GoalDifference != 26 {
		t.Fatalf("goal difference should be derived from scoresStr: %d", rows[1].GoalDifference)
	}
}

func TestClient_FetchMatches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(leagueFixture))
	}))
	defer srv.Close()

	pl, _ := competition.Lookup("PL")
	matches, err := newTestClient(t, srv).FetchMatches(context.Background(), pl)
	if err != nil {
		t.Fatalf("fetch matches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("unexpected matches: %d", len(matches))
	}

	played := matches[0]
	if played.Status != "FINISHED" || played.HomeScore == nil || *played.HomeScore != 2 || *played.AwayScore != 1 {
		t.Fatalf("unexpected finished match: %+v", played)
	}
	if played.Matchweek != 21 || played.Round != "GW 21" {
		t.Fatalf("unexpected round: %d %q", played.Matchweek, played.Round)
	}
	if !played.KickoffAt.Equal(time.Date(2026, 1, 18, 16, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected kickoff: %s", played.KickoffAt)
	}

	upcoming := matches[1]
	if upcoming.Status != "SCHEDULED" || upcoming.HomeScore != nil {
		t.Fatalf("scheduled match should carry no score: %+v", upcoming)
	}
}

func TestClient_ServerErrorYieldsEmptyBatch(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	pl, _ := competition.Lookup("PL")
	rows, err := newTestClient(t, srv).FetchStandings(context.Background(), pl)
	if err != nil {
		t.Fatalf("provider failures should not surface: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty batch, got %v", rows)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	pl, _ := competition.Lookup("PL")
	if _, err := newTestClient(t, srv).FetchMatches(context.Background(), pl); err != nil {
		t.Fatalf("fetch matches: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestClient_CanceledContextIsReturned(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(leagueFixture))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pl, _ := competition.Lookup("PL")
	if _, err := newTestClient(t, srv).FetchClubs(ctx, pl); err == nil {
		t.Fatalf("expected context error")
	}
}
