package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/fbref-fixtures/internal/config"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// InitUptrace installs the global OpenTelemetry providers. Spans started by
// otelhttp and by the usecase layer are dropped when it is disabled.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if reason := uptraceDisabledReason(cfg); reason != "" {
		logger.Info("uptrace disabled", "reason", reason)
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
		uptrace.WithResourceAttributes(
			attribute.String("fbref.base_url", cfg.FBrefBaseURL),
			attribute.Int("fbref.max_attempts", cfg.FBrefMaxAttempts),
		),
	)
	logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)

	return func(ctx context.Context) error {
		if err := uptrace.ForceFlush(ctx); err != nil {
			logger.Warn("uptrace flush failed", "error", err)
		}
		return uptrace.Shutdown(ctx)
	}, nil
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
