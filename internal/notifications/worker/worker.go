// Package worker turns booking lifecycle events into notification intents.
// Delivery is a log line per recipient for now; the routing logic of who
// hears about which transition lives here.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"tutorhub/internal/bookings/events"
	"tutorhub/pkg/kafka"
	"tutorhub/pkg/logger"
)

// Notification is one message owed to one recipient.
type Notification struct {
	RecipientID string `json:"recipient_id"`
	BookingID   string `json:"booking_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

type Worker struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Worker {
	return &Worker{log: log}
}

// Handle is the kafka.HandlerFunc for the booking events topic.
func (w *Worker) Handle(_ context.Context, msg kafka.Message) error {
	var event events.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		w.log.Error("Dropping undecodable booking event",
			"key", msg.Key,
			"event_type", msg.Headers[kafka.HeaderEventType],
			"error", err,
		)
		return err
	}

	for _, n := range w.route(event) {
		w.log.Info("Notification queued",
			"recipient_id", n.RecipientID,
			"booking_id", n.BookingID,
			"subject", n.Subject,
			"body", n.Body,
		)
	}
	return nil
}

// route decides who is told what. Requests notify the tutor; every
// decision the tutor takes notifies the student.
func (w *Worker) route(event events.BookingEvent) []Notification {
	switch event.Type {
	case events.TypeRequested:
		return []Notification{{
			RecipientID: event.TutorID,
			BookingID:   event.BookingID,
			Subject:     "New booking request",
			Body:        fmt.Sprintf("You have a new booking request for %s.", event.Subject),
		}}
	case events.TypeAccepted:
		return []Notification{{
			RecipientID: event.StudentID,
			BookingID:   event.BookingID,
			Subject:     "Booking accepted",
			Body:        fmt.Sprintf("Your %s booking was accepted for %s at %s.", event.Subject, event.Date, event.Time),
		}}
	case events.TypeRejected:
		return []Notification{{
			RecipientID: event.StudentID,
			BookingID:   event.BookingID,
			Subject:     "Booking declined",
			Body:        fmt.Sprintf("Your %s booking request was declined.", event.Subject),
		}}
	case events.TypeCompleted:
		return []Notification{{
			RecipientID: event.StudentID,
			BookingID:   event.BookingID,
			Subject:     "Session completed",
			Body:        fmt.Sprintf("Your %s session was marked completed.", event.Subject),
		}}
	default:
		w.log.Warn("Unknown booking event type", "type", event.Type, "booking_id", event.BookingID)
		return nil
	}
}
