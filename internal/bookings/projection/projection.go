// Package projection partitions a user's bookings into the dashboard
// buckets, using the lifecycle classifier on every record.
package projection

import (
	"time"

	"tutorhub/internal/bookings/lifecycle"
	"tutorhub/pkg/model"
)

// Dashboard is the five-way partition of a booking list by effective
// status. The buckets are disjoint and exhaustive: every record lands in
// exactly one.
type Dashboard struct {
	Pending   []*model.Booking `json:"pending"`
	Upcoming  []*model.Booking `json:"upcoming"`
	Completed []*model.Booking `json:"completed"`
	Expired   []*model.Booking `json:"expired"`
	Rejected  []*model.Booking `json:"rejected"`
}

// Build partitions bookings at instant now. Role does not enter the
// computation; it only affects which contact fields CardFor surfaces.
func Build(bookings []*model.Booking, now time.Time) Dashboard {
	var d Dashboard
	for _, b := range bookings {
		switch lifecycle.Classify(b, now) {
		case lifecycle.Pending:
			d.Pending = append(d.Pending, b)
		case lifecycle.Accepted:
			d.Upcoming = append(d.Upcoming, b)
		case lifecycle.Completed:
			d.Completed = append(d.Completed, b)
		case lifecycle.Expired:
			d.Expired = append(d.Expired, b)
		case lifecycle.Rejected:
			d.Rejected = append(d.Rejected, b)
		}
	}
	return d
}

// Size returns the total number of bookings across all buckets.
func (d Dashboard) Size() int {
	return len(d.Pending) + len(d.Upcoming) + len(d.Completed) + len(d.Expired) + len(d.Rejected)
}

// Card is the role-specific rendering of one booking: the counterparty's
// snapshot contact details plus the action affordances the viewer may use.
type Card struct {
	ID           string                    `json:"id"`
	Subject      string                    `json:"subject"`
	Date         string                    `json:"date,omitempty"`
	Time         string                    `json:"time,omitempty"`
	Status       lifecycle.EffectiveStatus `json:"status"`
	Message      string                    `json:"message,omitempty"`
	RejectReason string                    `json:"reject_reason,omitempty"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`

	CanAccept   bool `json:"can_accept,omitempty"`
	CanReject   bool `json:"can_reject,omitempty"`
	CanComplete bool `json:"can_complete,omitempty"`
}

// CardFor renders b for the given viewer role. A tutor sees the student's
// snapshot contact details and the transition affordances; a student sees
// the tutor's name always but email and phone only once the booking has
// been accepted.
func CardFor(b *model.Booking, role model.Role, now time.Time) Card {
	status := lifecycle.Classify(b, now)

	card := Card{
		ID:           b.ID,
		Subject:      b.Subject,
		Date:         b.Date,
		Time:         b.Time,
		Status:       status,
		Message:      b.Message,
		RejectReason: b.RejectReason,
	}

	if role == model.RoleTutor {
		card.ContactName = b.StudentName
		card.ContactEmail = b.StudentEmail
		card.CanAccept = status == lifecycle.Pending
		card.CanReject = status == lifecycle.Pending
		card.CanComplete = status == lifecycle.Accepted
		return card
	}

	card.ContactName = b.TutorName
	if status == lifecycle.Accepted || status == lifecycle.Completed {
		card.ContactEmail = b.TutorEmail
		card.ContactPhone = b.TutorPhone
	}
	return card
}

// Cards renders a whole bucket for one viewer role.
func Cards(bookings []*model.Booking, role model.Role, now time.Time) []Card {
	cards := make([]Card, 0, len(bookings))
	for _, b := range bookings {
		cards = append(cards, CardFor(b, role, now))
	}
	return cards
}
