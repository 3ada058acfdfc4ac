// Package events announces booking lifecycle transitions to the rest of
// the platform. Publishing is best-effort: a broker outage never fails the
// command that triggered the event.
package events

import (
	"context"
	"time"

	"tutorhub/pkg/kafka"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/model"

	"github.com/google/uuid"
)

type Type string

const (
	TypeRequested Type = "booking.requested"
	TypeAccepted  Type = "booking.accepted"
	TypeRejected  Type = "booking.rejected"
	TypeCompleted Type = "booking.completed"
)

// BookingEvent is the payload shared with consumers such as the
// notifications worker.
type BookingEvent struct {
	EventID    string       `json:"event_id"`
	Type       Type         `json:"type"`
	BookingID  string       `json:"booking_id"`
	TutorID    string       `json:"tutor_id"`
	StudentID  string       `json:"student_id"`
	Subject    string       `json:"subject"`
	Status     model.Status `json:"status"`
	Date       string       `json:"date,omitempty"`
	Time       string       `json:"time,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, booking *model.Booking, eventType Type)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
		source:   source,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, booking *model.Booking, eventType Type) {
	event := BookingEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		BookingID:  booking.ID,
		TutorID:    booking.TutorID,
		StudentID:  booking.StudentID,
		Subject:    booking.Subject,
		Status:     booking.Status,
		Date:       booking.Date,
		Time:       booking.Time,
		OccurredAt: time.Now().UTC(),
	}

	// Keyed by booking ID so one booking's transitions stay ordered.
	msg, err := kafka.NewJSONMessage(booking.ID, event, map[string]string{
		kafka.HeaderEventID:   event.EventID,
		kafka.HeaderEventType: string(eventType),
		kafka.HeaderSource:    p.source,
	})
	if err != nil {
		p.log.Error("Failed to encode booking event", "event_type", eventType, "booking_id", booking.ID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event", "event_type", eventType, "booking_id", booking.ID, "error", err)
	}
}

type noopPublisher struct {
	log *logger.Logger
}

// NewNoopPublisher is used when no brokers are configured; events are
// logged and dropped.
func NewNoopPublisher(log *logger.Logger) Publisher {
	return &noopPublisher{log: log}
}

func (p *noopPublisher) Publish(_ context.Context, booking *model.Booking, eventType Type) {
	p.log.Debug("Booking event dropped (no brokers configured)",
		"event_type", eventType,
		"booking_id", booking.ID,
	)
}
