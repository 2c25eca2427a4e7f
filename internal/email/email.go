package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/resortbooking/internal/kafka"
	"github.com/Domenick1991/resortbooking/internal/logging"
	"github.com/Domenick1991/resortbooking/internal/pricing"
)

// Sender delivers booking confirmations. There is no mail provider yet; the
// rendered message goes to the log.
type Sender struct {
	logger *logging.Logger
}

func NewSender(logger *logging.Logger) *Sender {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sender{logger: logger}
}

type Message struct {
	To      string
	Subject string
	Body    string
}

func (s *Sender) Send(ctx context.Context, event kafka.ConfirmationEvent) error {
	msg, err := Render(event)
	if err != nil {
		s.logger.Warn("skip confirmation email", "confirmation", event.ConfirmationNumber, "error", err)
		return nil
	}
	s.logger.Info("send email", "to", msg.To, "subject", msg.Subject, "confirmation", event.ConfirmationNumber)
	return nil
}

func Render(event kafka.ConfirmationEvent) (Message, error) {
	if event.Email == "" {
		return Message{}, fmt.Errorf("confirmation %s has no guest email", event.ConfirmationNumber)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", event.GuestName)
	fmt.Fprintf(&b, "Your stay at Cypress Resort is confirmed. Confirmation number: %s\n\n", event.ConfirmationNumber)
	fmt.Fprintf(&b, "Check-in:  %s\n", pricing.FormatDate(event.CheckIn))
	fmt.Fprintf(&b, "Check-out: %s\n", pricing.FormatDate(event.CheckOut))
	fmt.Fprintf(&b, "%s\n", pricing.NightsLabel(event.Nights))
	if event.ArrivalTime != "" {
		fmt.Fprintf(&b, "Expected arrival: %s\n", event.ArrivalTime)
	}
	if len(event.AddOns) > 0 {
		fmt.Fprintf(&b, "Enhancements: %s\n", strings.Join(event.AddOns, ", "))
	}
	fmt.Fprintf(&b, "Total: %s\n", pricing.FormatCurrency(event.Total))

	return Message{
		To:      event.Email,
		Subject: "Your Cypress Resort reservation " + event.ConfirmationNumber,
		Body:    b.String(),
	}, nil
}
