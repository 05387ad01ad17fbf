package bootstrap

import (
	"fmt"

	"github.com/getsentry/sentry-go"

	"github.com/osse101/Mivy_Go/internal/config"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// InitSentry configures the global Sentry hub. It returns false, with no
// error, when SENTRY_DSN is unset; captures are then dropped by the SDK.
func InitSentry(cfg *config.Config) (bool, error) {
	if cfg.SentryDSN == "" {
		logger.Info(LogMsgSentryDisabled)
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.Version,
		EnableTracing:    true,
		TracesSampleRate: SentryTracesSampleRate,
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgSentryInitFailed, err)
	}

	logger.Info(LogMsgSentryInitialized, "environment", cfg.Environment)
	return true, nil
}
