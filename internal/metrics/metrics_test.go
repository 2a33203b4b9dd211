package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesCollectors(t *testing.T) {
	Init()
	Init()

	ObserveUpstream("fotmob", "leagues", "ok", 120*time.Millisecond)
	ObserveJobRun("standings", "completed", time.Second)
	ObserveJobSkip("live_matches", "running")
	ObserveReconcile("matches", "PL", 2, 1, 0, 1)
	ObserveHTTPRequest(http.MethodGet, "/v1/standings", http.StatusOK, 5*time.Millisecond)
	ObserveChatReply("keyword")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	body := rec.Body.String()
	for _, name := range []string{
		"footballhub_upstream_requests_total",
		"footballhub_job_runs_total",
		"footballhub_job_skips_total",
		"footballhub_reconcile_records_total",
		"footballhub_http_requests_total",
		"footballhub_chat_replies_total",
	} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
}
