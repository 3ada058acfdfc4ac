package lifecycle

import (
	"testing"
	"time"

	"tutorhub/pkg/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func booking(status model.Status, date, timeOfDay string) *model.Booking {
	return &model.Booking{
		ID:        "b1",
		TutorID:   "t1",
		StudentID: "s1",
		Status:    status,
		Date:      date,
		Time:      timeOfDay,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		booking *model.Booking
		want    EffectiveStatus
	}{
		{
			name:    "pending without slot",
			booking: booking(model.StatusPending, "", ""),
			want:    Pending,
		},
		{
			name:    "accepted with future slot",
			booking: booking(model.StatusAccepted, "2025-06-16", "10:00"),
			want:    Accepted,
		},
		{
			name:    "accepted with past slot expires",
			booking: booking(model.StatusAccepted, "2025-06-14", "10:00"),
			want:    Expired,
		},
		{
			name:    "pending with past slot expires",
			booking: booking(model.StatusPending, "2025-06-14", "10:00"),
			want:    Expired,
		},
		{
			name:    "completed with past slot stays completed",
			booking: booking(model.StatusCompleted, "2025-06-14", "10:00"),
			want:    Completed,
		},
		{
			name:    "rejected with past slot stays rejected",
			booking: booking(model.StatusRejected, "2025-06-14", "10:00"),
			want:    Rejected,
		},
		{
			name:    "rejected without slot",
			booking: booking(model.StatusRejected, "", ""),
			want:    Rejected,
		},
		{
			name:    "completed without slot",
			booking: booking(model.StatusCompleted, "", ""),
			want:    Completed,
		},
		{
			name:    "accepted with unparsable date treated as unscheduled",
			booking: booking(model.StatusAccepted, "June 14th", "10:00"),
			want:    Accepted,
		},
		{
			name:    "pending with unparsable time treated as unscheduled",
			booking: booking(model.StatusPending, "2025-06-14", "ten o'clock"),
			want:    Pending,
		},
		{
			name:    "pending with date but no time never expires",
			booking: booking(model.StatusPending, "2025-06-14", ""),
			want:    Pending,
		},
		{
			name:    "accepted with time but no date never expires",
			booking: booking(model.StatusAccepted, "", "10:00"),
			want:    Accepted,
		},
		{
			name:    "accepted slot exactly now is not yet expired",
			booking: booking(model.StatusAccepted, "2025-06-15", "12:00"),
			want:    Accepted,
		},
		{
			name:    "accepted slot one minute ago expires",
			booking: booking(model.StatusAccepted, "2025-06-15", "11:59"),
			want:    Expired,
		},
		{
			name:    "empty status without slot falls back to pending",
			booking: booking("", "", ""),
			want:    Pending,
		},
		{
			name:    "garbage status with past slot expires",
			booking: booking("cancelled", "2025-06-14", "10:00"),
			want:    Expired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.booking, testNow)
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Rejection and completion are permanent: no instant, past or future,
// changes them.
func TestClassify_TerminalStatusesIgnoreClock(t *testing.T) {
	instants := []time.Time{
		testNow.Add(-365 * 24 * time.Hour),
		testNow,
		testNow.Add(365 * 24 * time.Hour),
	}
	slots := [][2]string{
		{"", ""},
		{"2025-06-14", "10:00"},
		{"2025-06-16", "10:00"},
		{"not-a-date", "10:00"},
	}

	for _, now := range instants {
		for _, slot := range slots {
			if got := Classify(booking(model.StatusRejected, slot[0], slot[1]), now); got != Rejected {
				t.Errorf("rejected booking at %v with slot %v classified as %q", now, slot, got)
			}
			if got := Classify(booking(model.StatusCompleted, slot[0], slot[1]), now); got != Completed {
				t.Errorf("completed booking at %v with slot %v classified as %q", now, slot, got)
			}
		}
	}
}

// Once a booking is expired at some instant, it stays expired at every
// later instant, as long as the record does not change.
func TestClassify_ExpiryIsMonotonic(t *testing.T) {
	b := booking(model.StatusAccepted, "2025-06-15", "11:00")

	earlier := Classify(b, testNow)
	if earlier != Expired {
		t.Fatalf("expected expired at %v, got %q", testNow, earlier)
	}

	for _, later := range []time.Duration{time.Minute, time.Hour, 24 * time.Hour} {
		if got := Classify(b, testNow.Add(later)); got != Expired {
			t.Errorf("booking un-expired after %v: %q", later, got)
		}
	}
}

func TestScheduledAt(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name      string
		date      string
		timeOfDay string
		wantOK    bool
		want      time.Time
	}{
		{
			name:      "valid slot",
			date:      "2025-06-15",
			timeOfDay: "09:30",
			wantOK:    true,
			want:      time.Date(2025, 6, 15, 9, 30, 0, 0, loc),
		},
		{
			name:   "both empty",
			wantOK: false,
		},
		{
			name:      "date only",
			date:      "2025-06-15",
			timeOfDay: "",
			wantOK:    false,
		},
		{
			name:      "time only",
			date:      "",
			timeOfDay: "09:30",
			wantOK:    false,
		},
		{
			name:      "unparsable date",
			date:      "15/06/2025",
			timeOfDay: "09:30",
			wantOK:    false,
		},
		{
			name:      "unparsable time",
			date:      "2025-06-15",
			timeOfDay: "9:30 AM",
			wantOK:    false,
		},
		{
			name:      "month out of range",
			date:      "2025-13-01",
			timeOfDay: "09:30",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScheduledAt(tt.date, tt.timeOfDay, loc)
			if ok != tt.wantOK {
				t.Fatalf("ScheduledAt() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ScheduledAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScheduledAt_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	got, ok := ScheduledAt("2025-06-15", "09:30", loc)
	if !ok {
		t.Fatal("expected a scheduled instant")
	}
	want := time.Date(2025, 6, 15, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ScheduledAt() = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("ScheduledAt() location = %v, want %v", got.Location(), loc)
	}
}
