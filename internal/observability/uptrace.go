package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/football-hub/internal/config"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

type shutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitUptrace installs the global OTel providers. With UPTRACE_LOGS_ENABLED the
// returned logger also exports its records through the OTel log pipeline.
func InitUptrace(cfg config.Config, logger *logging.Logger) (*logging.Logger, shutdownFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if reason := uptraceDisabledReason(cfg); reason != "" {
		logger.Info("uptrace disabled", "reason", reason)
		return logger, noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(uptraceOptions(cfg)...)
	if cfg.UptraceLogsEnabled {
		logger = logger.Tee(newUptraceLogCore(cfg.ServiceVersion, cfg.LogLevel))
	}
	logger.Info("uptrace enabled",
		"environment", cfg.AppEnv,
		"competitions", strings.Join(cfg.CompetitionCodes, ","),
		"logs_enabled", cfg.UptraceLogsEnabled,
	)
	return logger, uptrace.Shutdown, nil
}

func uptraceDisabledReason(cfg config.Config) string {
	switch {
	case !cfg.UptraceEnabled:
		return "UPTRACE_ENABLED=false"
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		return "UPTRACE_DSN empty"
	default:
		return ""
	}
}

func uptraceOptions(cfg config.Config) []uptrace.Option {
	return []uptrace.Option{
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
		uptrace.WithResourceAttributes(
			attribute.String("service.namespace", "football-hub"),
			attribute.StringSlice("app.competitions", cfg.CompetitionCodes),
		),
	}
}
