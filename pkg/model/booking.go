package model

import "time"

// Status is the persisted booking status. The display layer additionally
// derives "expired" from the scheduled instant; that value is never stored.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
)

// Booking is one booking request between a student and a tutor. The
// tutor_*/student_* fields are a display snapshot captured at creation time
// and are intentionally not kept in sync with the source profiles.
//
// Date and Time are a calendar date ("2006-01-02") and a local time-of-day
// ("15:04"). Both are empty until the tutor accepts and proposes a slot;
// combined they form the scheduled instant used for expiry derivation.
type Booking struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	TutorID      string    `json:"tutor_id" bson:"tutor_id" validate:"required"`
	StudentID    string    `json:"student_id" bson:"student_id" validate:"required"`
	TutorName    string    `json:"tutor_name" bson:"tutor_name" validate:"required,max=100"`
	TutorEmail   string    `json:"tutor_email" bson:"tutor_email" validate:"omitempty,email"`
	TutorPhone   string    `json:"tutor_phone,omitempty" bson:"tutor_phone,omitempty"`
	StudentName  string    `json:"student_name" bson:"student_name" validate:"required,max=100"`
	StudentEmail string    `json:"student_email" bson:"student_email" validate:"omitempty,email"`
	Subject      string    `json:"subject" bson:"subject" validate:"required,max=100"`
	Date         string    `json:"date,omitempty" bson:"date,omitempty"`
	Time         string    `json:"time,omitempty" bson:"time,omitempty"`
	Message      string    `json:"message,omitempty" bson:"message,omitempty" validate:"max=1000"`
	Status       Status    `json:"status" bson:"status" validate:"required,oneof=pending accepted rejected completed"`
	RejectReason string    `json:"reject_reason,omitempty" bson:"reject_reason,omitempty" validate:"max=500"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Scheduled reports whether the tutor has set a slot. Date and Time are
// either both empty or both set; anything else is treated as unscheduled.
func (b *Booking) Scheduled() bool {
	return b.Date != "" && b.Time != ""
}
