package bootstrap

import (
	"context"

	"github.com/getsentry/sentry-go"

	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Services           *Services
	ResilientPublisher *event.ResilientPublisher
	KafkaForwarder     *event.KafkaForwarder
	SentryEnabled      bool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Workers (cancel pending expiry timers, drain the expiry pool)
// 3. Event publisher (flush pending events), then the Kafka writer
// 4. Notification store and Sentry
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if svc := components.Services; svc != nil {
		if svc.MembershipWorker != nil {
			if err := svc.MembershipWorker.Shutdown(ctx); err != nil {
				logger.Error(LogMsgWorkerShutdownFailed, "error", err)
			}
		}
		if svc.ExpiryPool != nil {
			svc.ExpiryPool.Stop()
		}
	}

	// Shutdown resilient publisher after workers so their final events are flushed
	if components.ResilientPublisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.KafkaForwarder != nil {
		if err := components.KafkaForwarder.Close(); err != nil {
			logger.Error(LogMsgKafkaCloseFailed, "error", err)
		}
	}

	if svc := components.Services; svc != nil && svc.closeNotifications != nil {
		if err := svc.closeNotifications(); err != nil {
			logger.Error(LogMsgNotificationCloseFailed, "error", err)
		}
	}

	if components.SentryEnabled {
		sentry.Flush(SentryFlushTimeout)
	}

	logger.Info(LogMsgServerStopped)
}
