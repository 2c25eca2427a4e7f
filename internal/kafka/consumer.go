package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/resortbooking/internal/logging"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader messageReader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

// ConfirmationHandler decodes confirmation events for handle. Undecodable
// messages are logged and skipped.
func ConfirmationHandler(logger *logging.Logger, handle func(context.Context, ConfirmationEvent) error) func(context.Context, kafka.Message) error {
	return func(ctx context.Context, msg kafka.Message) error {
		var event ConfirmationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Warn("decode confirmation event", "error", err, "offset", msg.Offset)
			return nil
		}
		if event.Type != EventBookingConfirmed {
			return nil
		}
		return handle(ctx, event)
	}
}
