package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/football-hub/internal/config"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

func TestUptraceDisabledReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "flag off", cfg: config.Config{UptraceDSN: "https://token@api.uptrace.dev?grpc=4317"}, want: "UPTRACE_ENABLED=false"},
		{name: "blank dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  "}, want: "UPTRACE_DSN empty"},
		{name: "enabled", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev?grpc=4317"}, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := uptraceDisabledReason(tc.cfg); got != tc.want {
				t.Fatalf("reason = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInitUptrace_DisabledKeepsLogger(t *testing.T) {
	t.Parallel()

	base := logging.NewNop()
	logger, shutdown, err := InitUptrace(config.Config{AppEnv: config.EnvDev, UptraceLogsEnabled: true}, base)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if logger != base {
		t.Fatalf("disabled uptrace should not tee the logger")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestUptraceOptions_CarriesResourceAttributes(t *testing.T) {
	t.Parallel()

	opts := uptraceOptions(config.Config{
		UptraceDSN:       "https://token@api.uptrace.dev?grpc=4317",
		ServiceName:      "football-hub-api",
		CompetitionCodes: []string{"PL", "UCL"},
	})
	if len(opts) != 6 {
		t.Fatalf("options = %d, want 6", len(opts))
	}
}
