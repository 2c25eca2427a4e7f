package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/Domenick1991/resortbooking/internal/kafka"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const publishTimeout = 5 * time.Second

var tracer = otel.Tracer("resortbooking/wizard")

// handleConfirmed runs once per booking, after the simulated reservation call
// has produced a confirmation. The hook is skipped if the wizard was closed
// while the event was being published.
func (w *Wizard) handleConfirmed(state domain.BookingState) {
	w.mu.Lock()
	submittedAt := w.submittedAt
	hook := w.onConfirmed
	w.mu.Unlock()

	if !submittedAt.IsZero() {
		w.metrics.ObserveConfirmation(w.clock.Now().Sub(submittedAt).Seconds())
	} else {
		w.metrics.ObserveConfirmation(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	ctx, span := tracer.Start(ctx, "wizard.booking_confirmed")
	defer span.End()

	event := w.confirmationEvent(state)
	span.SetAttributes(
		attribute.String("session.id", w.id),
		attribute.String("booking.confirmation_number", event.ConfirmationNumber),
		attribute.Int("booking.nights", event.Nights),
		attribute.Float64("booking.total", event.Total),
	)
	w.logger.Info("booking confirmed",
		"confirmation_number", event.ConfirmationNumber,
		"nights", event.Nights,
		"total", event.Total,
	)

	if w.publisher != nil {
		for _, topic := range []string{w.cfg.ConfirmationsTopic, w.cfg.NotificationsTopic} {
			if topic == "" {
				continue
			}
			if err := w.publisher.Publish(ctx, topic, event.ConfirmationNumber, event); err != nil {
				span.RecordError(err)
				w.logger.Error("failed to publish confirmation", "topic", topic, "error", err)
			}
		}
	}

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if hook != nil && !closed {
		hook(state)
	}
}

func (w *Wizard) confirmationEvent(state domain.BookingState) kafka.ConfirmationEvent {
	g := state.GuestDetails
	event := kafka.ConfirmationEvent{
		Type:             kafka.EventBookingConfirmed,
		SessionID:        w.id,
		GuestName:        g.FirstName + " " + g.LastName,
		Email:            g.Email,
		Phone:            g.Phone,
		Nights:           state.Dates.Nights(),
		SpecialOccasions: g.SpecialOccasions,
		ArrivalTime:      g.ArrivalTime,
	}
	if state.Confirmation != nil {
		event.ConfirmationNumber = state.Confirmation.ConfirmationNumber
		event.CreatedAt = state.Confirmation.CreatedAt
	}
	if state.Accommodation != nil {
		event.VillaID = state.Accommodation.ID
	}
	if state.Dates.CheckIn != nil {
		event.CheckIn = *state.Dates.CheckIn
	}
	if state.Dates.CheckOut != nil {
		event.CheckOut = *state.Dates.CheckOut
	}
	if state.Pricing != nil {
		event.Total = state.Pricing.Total
	}
	for _, sel := range state.SelectedAddOns {
		name := sel.ID
		if a, ok := domain.FindAddOn(w.addOns, sel.ID); ok {
			name = a.Name
		}
		if sel.Quantity > 1 {
			name = fmt.Sprintf("%s x%d", name, sel.Quantity)
		}
		event.AddOns = append(event.AddOns, name)
	}
	return event
}
