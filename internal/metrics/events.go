package metrics

import (
	"context"

	"github.com/osse101/JackpotEngine_Go/internal/event"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// EventMetricsCollector subscribes to round events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all round events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.RoundTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case event.RoundOpenedPayloadV1:
		PotValueCents.Set(0)
		RoundParticipants.Set(0)

	case event.LedgerUpdatedPayloadV1:
		ContributionsAccepted.Inc()
		PotValueCents.Set(float64(p.TotalValue))
		RoundParticipants.Set(float64(len(p.Participants)))

	case event.RoundLockedPayloadV1:
		RoundLocks.WithLabelValues(p.Trigger).Inc()

	case event.DrawScheduledPayloadV1:

	case event.RoundCompletedPayloadV1:
		RoundsTotal.WithLabelValues(OutcomeCompleted).Inc()
		PayoutCentsTotal.Add(float64(p.Payout))
		CommissionCentsTotal.Add(float64(p.Commission))

	case event.RoundAbortedPayloadV1:
		if p.Halted {
			RoundsTotal.WithLabelValues(OutcomeHalted).Inc()
			IntegrityFaults.Inc()
		} else {
			RoundsTotal.WithLabelValues(OutcomeAborted).Inc()
		}

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
