package kafka

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is one event on the wire. Key is the partition key; records about
// the same booking share a key so consumers see its transitions in order.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// Header keys shared by all services.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

// NewJSONMessage builds a message with a JSON-encoded payload.
func NewJSONMessage(key string, payload any, headers map[string]string) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode message payload: %w", err)
	}
	return Message{
		Key:       key,
		Value:     value,
		Headers:   headers,
		Timestamp: time.Now(),
	}, nil
}
