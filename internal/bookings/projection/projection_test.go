package projection

import (
	"testing"
	"time"

	"tutorhub/internal/bookings/lifecycle"
	"tutorhub/pkg/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleBookings() []*model.Booking {
	return []*model.Booking{
		{ID: "pending", Status: model.StatusPending},
		{ID: "upcoming", Status: model.StatusAccepted, Date: "2025-06-20", Time: "10:00"},
		{ID: "completed", Status: model.StatusCompleted, Date: "2025-06-01", Time: "10:00"},
		{ID: "expired-accepted", Status: model.StatusAccepted, Date: "2025-06-10", Time: "10:00"},
		{ID: "expired-pending", Status: model.StatusPending, Date: "2025-06-10", Time: "10:00"},
		{ID: "rejected", Status: model.StatusRejected, RejectReason: "fully booked"},
	}
}

func TestBuild(t *testing.T) {
	d := Build(sampleBookings(), testNow)

	assertIDs := func(bucket string, got []*model.Booking, want ...string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("%s: got %d bookings, want %d", bucket, len(got), len(want))
		}
		for i, b := range got {
			if b.ID != want[i] {
				t.Errorf("%s[%d] = %q, want %q", bucket, i, b.ID, want[i])
			}
		}
	}

	assertIDs("pending", d.Pending, "pending")
	assertIDs("upcoming", d.Upcoming, "upcoming")
	assertIDs("completed", d.Completed, "completed")
	assertIDs("expired", d.Expired, "expired-accepted", "expired-pending")
	assertIDs("rejected", d.Rejected, "rejected")
}

// Every booking lands in exactly one bucket, whatever is stored in it.
func TestBuild_PartitionInvariant(t *testing.T) {
	bookings := sampleBookings()
	bookings = append(bookings,
		&model.Booking{ID: "garbage-status", Status: "whatever"},
		&model.Booking{ID: "garbage-slot", Status: model.StatusAccepted, Date: "bad", Time: "worse"},
		&model.Booking{ID: "empty"},
	)

	d := Build(bookings, testNow)
	if d.Size() != len(bookings) {
		t.Fatalf("partition lost or duplicated records: size %d, input %d", d.Size(), len(bookings))
	}

	seen := make(map[string]int)
	for _, bucket := range [][]*model.Booking{d.Pending, d.Upcoming, d.Completed, d.Expired, d.Rejected} {
		for _, b := range bucket {
			seen[b.ID]++
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("booking %q appears %d times", id, count)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	d := Build(nil, testNow)
	if d.Size() != 0 {
		t.Errorf("expected empty dashboard, got size %d", d.Size())
	}
}

func TestCardFor_TutorView(t *testing.T) {
	b := &model.Booking{
		ID:           "b1",
		Status:       model.StatusPending,
		Subject:      "Physics",
		StudentName:  "Asha Rao",
		StudentEmail: "asha@example.com",
		TutorName:    "Dr. Mehta",
		TutorEmail:   "mehta@example.com",
		TutorPhone:   "+919812345678",
	}

	card := CardFor(b, model.RoleTutor, testNow)

	if card.ContactName != "Asha Rao" || card.ContactEmail != "asha@example.com" {
		t.Errorf("tutor should see the student's contact, got %q / %q", card.ContactName, card.ContactEmail)
	}
	if card.ContactPhone != "" {
		t.Errorf("student snapshot has no phone, got %q", card.ContactPhone)
	}
	if !card.CanAccept || !card.CanReject {
		t.Error("pending booking should offer accept and reject to the tutor")
	}
	if card.CanComplete {
		t.Error("pending booking must not offer complete")
	}
}

func TestCardFor_TutorAffordancesFollowEffectiveStatus(t *testing.T) {
	tests := []struct {
		name        string
		booking     *model.Booking
		canAccept   bool
		canReject   bool
		canComplete bool
	}{
		{
			name:        "accepted upcoming",
			booking:     &model.Booking{Status: model.StatusAccepted, Date: "2025-06-20", Time: "10:00"},
			canComplete: true,
		},
		{
			name:    "accepted but expired offers nothing",
			booking: &model.Booking{Status: model.StatusAccepted, Date: "2025-06-10", Time: "10:00"},
		},
		{
			name:    "pending but expired offers nothing",
			booking: &model.Booking{Status: model.StatusPending, Date: "2025-06-10", Time: "10:00"},
		},
		{
			name:    "rejected offers nothing",
			booking: &model.Booking{Status: model.StatusRejected, RejectReason: "no slots"},
		},
		{
			name:    "completed offers nothing",
			booking: &model.Booking{Status: model.StatusCompleted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := CardFor(tt.booking, model.RoleTutor, testNow)
			if card.CanAccept != tt.canAccept || card.CanReject != tt.canReject || card.CanComplete != tt.canComplete {
				t.Errorf("affordances = accept:%v reject:%v complete:%v, want accept:%v reject:%v complete:%v",
					card.CanAccept, card.CanReject, card.CanComplete,
					tt.canAccept, tt.canReject, tt.canComplete)
			}
		})
	}
}

func TestCardFor_StudentContactGating(t *testing.T) {
	base := model.Booking{
		ID:         "b1",
		Subject:    "Physics",
		TutorName:  "Dr. Mehta",
		TutorEmail: "mehta@example.com",
		TutorPhone: "+919812345678",
	}

	tests := []struct {
		name        string
		mutate      func(b *model.Booking)
		wantContact bool
	}{
		{
			name:   "pending hides contact",
			mutate: func(b *model.Booking) { b.Status = model.StatusPending },
		},
		{
			name: "accepted reveals contact",
			mutate: func(b *model.Booking) {
				b.Status = model.StatusAccepted
				b.Date, b.Time = "2025-06-20", "10:00"
			},
			wantContact: true,
		},
		{
			name: "completed keeps contact",
			mutate: func(b *model.Booking) {
				b.Status = model.StatusCompleted
				b.Date, b.Time = "2025-06-01", "10:00"
			},
			wantContact: true,
		},
		{
			name: "expired hides contact again",
			mutate: func(b *model.Booking) {
				b.Status = model.StatusAccepted
				b.Date, b.Time = "2025-06-10", "10:00"
			},
		},
		{
			name: "rejected hides contact",
			mutate: func(b *model.Booking) {
				b.Status = model.StatusRejected
				b.RejectReason = "unavailable"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base
			tt.mutate(&b)
			card := CardFor(&b, model.RoleStudent, testNow)

			if card.ContactName != "Dr. Mehta" {
				t.Errorf("tutor name should always show, got %q", card.ContactName)
			}
			gotContact := card.ContactEmail != "" || card.ContactPhone != ""
			if gotContact != tt.wantContact {
				t.Errorf("contact visible = %v, want %v", gotContact, tt.wantContact)
			}
			if card.CanAccept || card.CanReject || card.CanComplete {
				t.Error("students never get transition affordances")
			}
		})
	}
}

func TestCardFor_StatusMatchesClassifier(t *testing.T) {
	for _, b := range sampleBookings() {
		card := CardFor(b, model.RoleStudent, testNow)
		if card.Status != lifecycle.Classify(b, testNow) {
			t.Errorf("booking %q: card status %q disagrees with classifier", b.ID, card.Status)
		}
	}
}
