package kafka

import (
	"context"
	"errors"
	"io"

	kafkago "github.com/segmentio/kafka-go"
)

// HandlerFunc processes one consumed message. Returning an error logs and
// skips the message; offsets are committed by the reader either way.
type HandlerFunc func(ctx context.Context, msg Message) error

// Consumer wraps a kafka-go reader in a blocking poll loop.
type Consumer struct {
	reader *kafkago.Reader
}

func NewConsumer(brokers []string, topic, groupID string) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic cannot be empty")
	}
	if groupID == "" {
		return nil, errors.New("group ID cannot be empty")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafkago.LastOffset,
	})

	return &Consumer{reader: reader}, nil
}

// Run consumes until the context is cancelled or the reader is closed.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	for {
		raw, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		msg := Message{
			Key:       string(raw.Key),
			Value:     raw.Value,
			Headers:   make(map[string]string, len(raw.Headers)),
			Timestamp: raw.Time,
		}
		for _, h := range raw.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}

		if err := handle(ctx, msg); err != nil {
			// Handler errors are the handler's to log; the loop keeps going.
			continue
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
