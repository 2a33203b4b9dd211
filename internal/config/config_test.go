package config

import (
	"testing"
	"time"
)

// baseEnv clears the switches that would fail Load on a developer machine.
func baseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	t.Setenv("STORE_DRIVER", StoreDriverMemory)
}

func TestLoad_RejectsInvalidEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown app env", env: map[string]string{"APP_ENV": "qa"}},
		{name: "uptrace without dsn", env: map[string]string{"UPTRACE_ENABLED": "true", "UPTRACE_DSN": ""}},
		{name: "betterstack without endpoint", env: map[string]string{"BETTERSTACK_ENABLED": "true", "BETTERSTACK_ENDPOINT": ""}},
		{name: "pyroscope without server", env: map[string]string{"PYROSCOPE_ENABLED": "true", "PYROSCOPE_SERVER_ADDRESS": ""}},
		{name: "bad prepared binary flag", env: map[string]string{"DB_DISABLE_PREPARED_BINARY_RESULT": "not-bool"}},
		{name: "bad cache ttl", env: map[string]string{"CACHE_TTL": "bad"}},
		{name: "zero cache ttl", env: map[string]string{"CACHE_TTL": "0s"}},
		{name: "bad log level", env: map[string]string{"APP_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected Load to fail for %v", tt.env)
			}
		})
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	baseEnv(t)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled || cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected better stack config: %+v", cfg)
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel)
	}
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	for env, want := range map[string]bool{EnvDev: true, EnvStage: true, EnvProd: false} {
		t.Run(env, func(t *testing.T) {
			baseEnv(t)
			t.Setenv("APP_ENV", env)
			t.Setenv("SWAGGER_ENABLED", "")

			cfg, err := Load()
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.SwaggerEnabled != want {
				t.Fatalf("SwaggerEnabled=%v want=%v", cfg.SwaggerEnabled, want)
			}
		})
	}
}

func TestLoad_ProfilingDefaults(t *testing.T) {
	baseEnv(t)
	t.Setenv("APP_SERVICE_NAME", "football-hub-api-test")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
	if cfg.PyroscopeAppName != "football-hub-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: []string{"*"}},
		{raw: " https://hub.example.com, http://localhost:5173 ,", want: []string{"https://hub.example.com", "http://localhost:5173"}},
	}
	for _, tt := range tests {
		baseEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", tt.raw)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != len(tt.want) {
			t.Fatalf("CORS_ALLOWED_ORIGINS=%q parsed to %+v", tt.raw, cfg.CORSAllowedOrigins)
		}
		for i := range tt.want {
			if cfg.CORSAllowedOrigins[i] != tt.want[i] {
				t.Fatalf("CORS_ALLOWED_ORIGINS=%q parsed to %+v", tt.raw, cfg.CORSAllowedOrigins)
			}
		}
	}
}

func TestLoad_StoreDefaults(t *testing.T) {
	baseEnv(t)
	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("CACHE_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.DBDisablePreparedBinary {
		t.Fatalf("expected DBDisablePreparedBinary=true by default")
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
}

func TestLoad_StoreDriverParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default postgres", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StoreDriverPostgres {
			t.Fatalf("unexpected default store driver: %q", cfg.StoreDriver)
		}
	})

	t.Run("memory is case insensitive", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", " Memory ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StoreDriverMemory {
			t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mysql")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORE_DRIVER")
		}
	})
}

func TestLoad_FotMobConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.FotMobBaseURL != "https://www.fotmob.com/api" {
			t.Fatalf("unexpected base url: %q", cfg.FotMobBaseURL)
		}
		if cfg.FotMobMaxRetries != 2 || cfg.FotMobRetryDelay != 2*time.Second {
			t.Fatalf("unexpected retry settings: %d %s", cfg.FotMobMaxRetries, cfg.FotMobRetryDelay)
		}
		if cfg.FotMobRPS != 2 {
			t.Fatalf("unexpected rps: %v", cfg.FotMobRPS)
		}
		if !cfg.FotMobCircuitEnabled || cfg.FotMobCircuitFailureCount != 5 {
			t.Fatalf("unexpected circuit settings: %+v", cfg)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("FOTMOB_BASE_URL", " http://localhost:9000/api ")
		t.Setenv("FOTMOB_MAX_RETRIES", "0")
		t.Setenv("FOTMOB_RPS", "0.5")
		t.Setenv("FOTMOB_CIRCUIT_OPEN_TIMEOUT", "1m")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.FotMobBaseURL != "http://localhost:9000/api" {
			t.Fatalf("unexpected base url: %q", cfg.FotMobBaseURL)
		}
		if cfg.FotMobMaxRetries != 0 {
			t.Fatalf("unexpected max retries: %d", cfg.FotMobMaxRetries)
		}
		if cfg.FotMobRPS != 0.5 {
			t.Fatalf("unexpected rps: %v", cfg.FotMobRPS)
		}
		if cfg.FotMobCircuitOpenTimeout != time.Minute {
			t.Fatalf("unexpected open timeout: %s", cfg.FotMobCircuitOpenTimeout)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := map[string]string{
			"FOTMOB_MAX_RETRIES":           "-1",
			"FOTMOB_RPS":                   "0",
			"FOTMOB_TIMEOUT":               "soon",
			"FOTMOB_CONCURRENCY":           "0",
			"FOTMOB_CIRCUIT_FAILURE_COUNT": "0",
		}
		for key, value := range cases {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)
				if _, err := Load(); err == nil {
					t.Fatalf("expected error for %s=%s", key, value)
				}
			})
		}
	})
}

func TestLoad_CompetitionSeasonValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("valid year", func(t *testing.T) {
		t.Setenv("COMPETITION_SEASON", "2025")
		t.Setenv("COMPETITION_SEASON_LABEL", "2025/2026")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CompetitionSeason != "2025" || cfg.CompetitionSeasonLabel != "2025/2026" {
			t.Fatalf("unexpected season: %q %q", cfg.CompetitionSeason, cfg.CompetitionSeasonLabel)
		}
	})

	t.Run("not a year", func(t *testing.T) {
		t.Setenv("COMPETITION_SEASON", "25/26")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for malformed COMPETITION_SEASON")
		}
	})

	t.Run("competitions are upper cased", func(t *testing.T) {
		t.Setenv("COMPETITION_SEASON", "")
		t.Setenv("COMPETITIONS", "pl, ucl")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CompetitionCodes) != 2 || cfg.CompetitionCodes[0] != "PL" || cfg.CompetitionCodes[1] != "UCL" {
			t.Fatalf("unexpected competitions: %+v", cfg.CompetitionCodes)
		}
	})
}

func TestLoad_SchedulerConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SchedulerEnabled || cfg.SchedulerWorkers != 4 {
			t.Fatalf("unexpected scheduler defaults: enabled=%v workers=%d", cfg.SchedulerEnabled, cfg.SchedulerWorkers)
		}
		if cfg.SchedulerTimezone != time.UTC {
			t.Fatalf("unexpected timezone: %v", cfg.SchedulerTimezone)
		}
		if cfg.LiveLookahead != 10*time.Minute || cfg.LiveLookback != 3*time.Hour {
			t.Fatalf("unexpected live window: %s %s", cfg.LiveLookahead, cfg.LiveLookback)
		}
		if cfg.MatchDurationAllowance != 95*time.Minute {
			t.Fatalf("unexpected match allowance: %s", cfg.MatchDurationAllowance)
		}
	})

	t.Run("schedule overrides", func(t *testing.T) {
		t.Setenv("JOB_LIVE_SCHEDULE", " */2 * * * * ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.JobLiveSchedule != "*/2 * * * *" {
			t.Fatalf("unexpected live schedule: %q", cfg.JobLiveSchedule)
		}
	})

	t.Run("invalid timezone", func(t *testing.T) {
		t.Setenv("SCHEDULER_TIMEZONE", "Mars/Olympus")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown SCHEDULER_TIMEZONE")
		}
	})

	t.Run("invalid workers", func(t *testing.T) {
		t.Setenv("SCHEDULER_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SCHEDULER_WORKERS=0")
		}
	})
}

func TestLoad_GeminiConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("no key disables llm", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GOOGLE_API_KEY", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ChatLLMEnabled() {
			t.Fatalf("expected chat llm disabled without key")
		}
	})

	t.Run("google key fallback", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GOOGLE_API_KEY", "g-key")
		t.Setenv("GEMINI_MODELS", "gemini-a, gemini-b")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.ChatLLMEnabled() || cfg.GeminiAPIKey != "g-key" {
			t.Fatalf("unexpected gemini key: %q", cfg.GeminiAPIKey)
		}
		if len(cfg.GeminiModels) != 2 || cfg.GeminiModels[1] != "gemini-b" {
			t.Fatalf("unexpected models: %+v", cfg.GeminiModels)
		}
	})

	t.Run("chat rate limits", func(t *testing.T) {
		t.Setenv("CHAT_RATE_PER_MINUTE", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CHAT_RATE_PER_MINUTE=0")
		}
	})
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	if got != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn: %q", got)
	}
	if parseUptraceDSNFromOTLPHeaders("") != "" {
		t.Fatalf("expected empty dsn for empty headers")
	}
}
