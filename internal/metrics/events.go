package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/Mivy_Go/internal/event"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case event.MembershipActivatedPayloadV1:
		MembershipsActivated.WithLabelValues(strconv.FormatBool(p.ReplacedID != "")).Inc()
		if p.PriceUSD.IsPositive() {
			MembershipVolumeUSD.Add(p.PriceUSD.InexactFloat64())
		}

	case event.MembershipExpiredPayloadV1:
		MembershipsExpired.Inc()

	case event.PostCreatedPayloadV1:
		PostsCreated.WithLabelValues(strconv.FormatBool(p.Gated)).Inc()

	case event.PostInteractionPayloadV1:
		switch evt.Type {
		case event.PostLiked:
			PostLikes.Inc()
		case event.PostCommented:
			PostComments.Inc()
		}

	case event.UserCreatedPayloadV1:
		UsersCreated.WithLabelValues(p.Protocol).Inc()

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
