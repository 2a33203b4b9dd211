package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/football-hub/internal/config"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/platform/resilience"
)

type receivedBatches struct {
	mu      sync.Mutex
	batches [][]map[string]any
	auth    string
}

func (r *receivedBatches) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		raw, _ := io.ReadAll(req.Body)
		var batch []map[string]any
		if err := sonic.Unmarshal(raw, &batch); err != nil {
			t.Errorf("decode batch: %v body=%s", err, raw)
		}
		r.mu.Lock()
		r.batches = append(r.batches, batch)
		r.auth = req.Header.Get("Authorization")
		r.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}
}

func (r *receivedBatches) entries() []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []map[string]any
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func betterStackTestConfig(endpoint string) config.Config {
	return config.Config{
		BetterStackEnabled:  true,
		BetterStackEndpoint: endpoint,
		BetterStackToken:    "secret-token",
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelWarn,
		ServiceName:         "football-hub-api",
		AppEnv:              config.EnvDev,
	}
}

func TestInitBetterStackLogger_ShipsBatchOnFlush(t *testing.T) {
	t.Parallel()

	received := &receivedBatches{}
	server := httptest.NewServer(received.handler(t))
	defer server.Close()

	logger, flush, err := InitBetterStackLogger(betterStackTestConfig(server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.InfoContext(context.Background(), "below min level")
	logger.WarnContext(context.Background(), "fotmob slow", "competition", "PL")
	logger.ErrorContext(context.Background(), "crawl failed", "job", "standings")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := flush(ctx); err != nil {
		t.Fatalf("flush logger: %v", err)
	}

	entries := received.entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 shipped entries, got %d: %+v", len(entries), entries)
	}
	if entries[0]["msg"] != "fotmob slow" || entries[1]["msg"] != "crawl failed" {
		t.Fatalf("unexpected shipped order: %+v", entries)
	}
	if entries[1]["service_name"] != "football-hub-api" || entries[1]["job"] != "standings" {
		t.Fatalf("missing fields on shipped entry: %+v", entries[1])
	}
	if received.auth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", received.auth)
	}
}

func TestInitBetterStackLogger_Disabled(t *testing.T) {
	t.Parallel()

	base := logging.NewNop()
	logger, flush, err := InitBetterStackLogger(config.Config{}, base)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}
	if logger != base {
		t.Fatalf("expected base logger when disabled")
	}
	if err := flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestInitBetterStackLogger_EmptyEndpoint(t *testing.T) {
	t.Parallel()

	cfg := betterStackTestConfig("  ")
	if _, _, err := InitBetterStackLogger(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestBetterStackShipper_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	shipper := newBetterStackShipper(server.URL, "", time.Second)
	shipper.retry = resilience.RetryPolicy{Attempts: 2, Delay: time.Millisecond}
	_, _ = shipper.Write([]byte(`{"msg":"one"}` + "\n"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := shipper.Close(ctx); err != nil {
		t.Fatalf("close shipper: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestIsRetryableShipError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "transport", err: io.ErrUnexpectedEOF, want: true},
		{name: "rate limited", err: &shipStatusError{code: http.StatusTooManyRequests}, want: true},
		{name: "server error", err: &shipStatusError{code: http.StatusBadGateway}, want: true},
		{name: "bad request", err: &shipStatusError{code: http.StatusBadRequest}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableShipError(tt.err); got != tt.want {
				t.Fatalf("isRetryableShipError(%v)=%v want=%v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBetterStackEndpoint(t *testing.T) {
	t.Parallel()

	if got := betterStackEndpoint("in.logs.betterstack.com"); got != "https://in.logs.betterstack.com" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := betterStackEndpoint("http://localhost:9999"); got != "http://localhost:9999" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := betterStackEndpoint(" "); got != "" {
		t.Fatalf("expected empty endpoint, got %q", got)
	}
}
