// Package lifecycle derives a booking's display status from its persisted
// status and the current time. The derived value is recomputed on every
// read and never stored: "expired" is a function of the wall clock, not a
// state transition.
package lifecycle

import (
	"time"

	"tutorhub/pkg/model"
)

// EffectiveStatus is the status shown to the user. It differs from the
// persisted status only via the expired derivation.
type EffectiveStatus string

const (
	Pending   EffectiveStatus = "pending"
	Accepted  EffectiveStatus = "accepted"
	Completed EffectiveStatus = "completed"
	Rejected  EffectiveStatus = "rejected"
	Expired   EffectiveStatus = "expired"
)

const scheduleLayout = "2006-01-02T15:04"

// ScheduledAt combines a booking's calendar date and local time-of-day into
// a single instant in loc. ok is false when either part is missing or
// unparsable; such bookings have no scheduled instant and cannot expire.
func ScheduledAt(date, timeOfDay string, loc *time.Location) (time.Time, bool) {
	if date == "" || timeOfDay == "" {
		return time.Time{}, false
	}
	at, err := time.ParseInLocation(scheduleLayout, date+"T"+timeOfDay, loc)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// Classify returns the effective status of b at instant now.
//
// Precedence: rejection is permanent and never expires; completion likewise;
// any scheduled instant in the past makes the booking expired, whether the
// tutor accepted it or simply never answered before the slot lapsed; a
// booking without a (parsable) slot keeps its persisted status.
//
// Classify is total: it never fails, whatever is stored in b.
func Classify(b *model.Booking, now time.Time) EffectiveStatus {
	switch b.Status {
	case model.StatusRejected:
		return Rejected
	case model.StatusCompleted:
		return Completed
	}

	if at, ok := ScheduledAt(b.Date, b.Time, now.Location()); ok && at.Before(now) {
		return Expired
	}

	if b.Status == model.StatusAccepted {
		return Accepted
	}
	return Pending
}
