package events

import (
	"fmt"

	"shareit/internal/metrics"

	"github.com/rs/zerolog"
)

// RegisterBookingAudit counts every booking lifecycle event and writes an
// audit log line for it.
func RegisterBookingAudit(bus *EventBus, logger *zerolog.Logger) {
	audit := logger.With().Str("component", "booking_audit").Logger()

	bus.Subscribe(func(event *Event) error {
		var p BookingEventPayload
		if err := event.Decode(&p); err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Type, err)
		}

		metrics.IncBookingTransition(event.Type)
		audit.Info().
			Str("event", event.Type).
			Int64("booking_id", p.BookingID).
			Int64("item_id", p.ItemID).
			Int64("booker_id", p.BookerID).
			Int64("actor_id", p.ActorID).
			Str("status", p.Status).
			Msg("booking lifecycle event")
		return nil
	}, EventBookingCreated, EventBookingApproved, EventBookingRejected)
}
