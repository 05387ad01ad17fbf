package bootstrap

import (
	"fmt"

	"github.com/osse101/Mivy_Go/internal/creator"
	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/metrics"
	"github.com/osse101/Mivy_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus         event.Bus
	CreatorService   creator.Service
	MembershipWorker *worker.MembershipWorker
	KafkaForwarder   *event.KafkaForwarder
}

// RegisterEventHandlers sets up all event handlers and subscribers:
// creator stats, metrics, exact-time membership expiry and, when configured,
// the Kafka forwarder.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	creator.RegisterStatsHandlers(deps.EventBus, deps.CreatorService)
	logger.Info(LogMsgCreatorStatsRegistered)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	if deps.MembershipWorker != nil {
		deps.MembershipWorker.Subscribe(deps.EventBus)
		logger.Info(LogMsgMembershipWorkerSubscribed)
	}

	if deps.KafkaForwarder != nil {
		deps.KafkaForwarder.Register(deps.EventBus)
	}

	return nil
}
