package kafka

import (
	"context"
	"time"

	"github.com/Domenick1991/pestbooking/internal/logging"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// EventHandler processes one decoded booking event. A returned error stops
// the consumer.
type EventHandler func(ctx context.Context, event BookingEvent) error

// Consumer reads booking events from one topic. Messages that do not decode
// or whose type is not wanted are logged and skipped.
type Consumer struct {
	reader messageReader
	types  map[string]bool
	log    *zap.Logger
}

type ConsumerOption func(*Consumer)

// WithEventTypes restricts delivery to the given event types. Without it
// every decoded event reaches the handler.
func WithEventTypes(types ...string) ConsumerOption {
	return func(c *Consumer) {
		c.types = make(map[string]bool, len(types))
		for _, t := range types {
			c.types[t] = true
		}
	}
}

func WithConsumerLogger(log *zap.Logger) ConsumerOption {
	return func(c *Consumer) {
		c.log = logging.OrNop(log)
	}
}

func NewConsumer(brokers []string, groupID, topic string, opts ...ConsumerOption) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return newConsumer(reader, opts...)
}

func newConsumer(reader messageReader, opts ...ConsumerOption) *Consumer {
	c := &Consumer{reader: reader, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume decodes messages and hands the wanted events to handler until ctx
// is done, the reader fails or handler returns an error.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := DecodeBookingEvent(msg)
		if err != nil {
			c.log.Warn("skipping undecodable event",
				zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset), zap.Error(err))
			continue
		}
		if c.types != nil && !c.types[event.Type] {
			c.log.Debug("skipping event", zap.String("type", event.Type), zap.String("token", event.Token))
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}
