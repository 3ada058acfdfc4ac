package store

import (
	"context"
	"testing"
	"time"

	"tutorhub/internal/bookings/service"
	apperrors "tutorhub/pkg/errors"
	"tutorhub/pkg/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// stubService fakes only what the store needs.
type stubService struct {
	service.BookingService

	findFunc   func(ctx context.Context, userID string, role model.Role) ([]*model.Booking, error)
	acceptFunc func(ctx context.Context, sess *model.Session, id, date, timeOfDay string) (*model.Booking, error)
}

func (s *stubService) FindForUser(ctx context.Context, userID string, role model.Role) ([]*model.Booking, error) {
	return s.findFunc(ctx, userID, role)
}

func (s *stubService) Accept(ctx context.Context, sess *model.Session, id, date, timeOfDay string) (*model.Booking, error) {
	return s.acceptFunc(ctx, sess, id, date, timeOfDay)
}

func TestFetch_ReplacesList(t *testing.T) {
	calls := 0
	svc := &stubService{
		findFunc: func(_ context.Context, _ string, _ model.Role) ([]*model.Booking, error) {
			calls++
			if calls == 1 {
				return []*model.Booking{{ID: "a"}, {ID: "b"}}, nil
			}
			return []*model.Booking{{ID: "c"}}, nil
		},
	}
	st := New(svc)

	if err := st.Fetch(context.Background(), "user-1", model.RoleStudent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := st.Bookings(); len(got) != 2 {
		t.Fatalf("first fetch: got %d bookings", len(got))
	}

	if err := st.Fetch(context.Background(), "user-1", model.RoleStudent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := st.Bookings()
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("second fetch must replace, not merge: %v", got)
	}
}

// A failed refresh keeps the previously loaded list so the dashboard can
// still render alongside the error.
func TestFetch_FailureKeepsPriorList(t *testing.T) {
	healthy := true
	svc := &stubService{
		findFunc: func(_ context.Context, _ string, _ model.Role) ([]*model.Booking, error) {
			if healthy {
				return []*model.Booking{{ID: "a"}}, nil
			}
			return nil, apperrors.Internal("Failed to retrieve bookings", nil)
		},
	}
	st := New(svc)

	if err := st.Fetch(context.Background(), "user-1", model.RoleStudent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	healthy = false
	if err := st.Fetch(context.Background(), "user-1", model.RoleStudent); err == nil {
		t.Fatal("expected an error")
	}

	if got := st.Bookings(); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("prior list lost on failure: %v", got)
	}
	if st.Err() == nil {
		t.Error("error not retained")
	}
	if st.Loading() {
		t.Error("loading flag stuck after failed fetch")
	}

	// A later successful fetch clears the error.
	healthy = true
	if err := st.Fetch(context.Background(), "user-1", model.RoleStudent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Err() != nil {
		t.Errorf("error not cleared after recovery: %v", st.Err())
	}
}

// Switching user or role must never serve the previous identity's list,
// even transiently.
func TestFetch_IdentitySwitchDropsCache(t *testing.T) {
	svc := &stubService{
		findFunc: func(_ context.Context, userID string, _ model.Role) ([]*model.Booking, error) {
			if userID == "user-2" {
				return nil, apperrors.Internal("down", nil)
			}
			return []*model.Booking{{ID: "user-1-booking"}}, nil
		},
	}
	st := New(svc)

	if err := st.Fetch(context.Background(), "user-1", model.RoleStudent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The fetch for the new user fails, but the old user's list must be
	// gone regardless.
	_ = st.Fetch(context.Background(), "user-2", model.RoleStudent)
	if got := st.Bookings(); len(got) != 0 {
		t.Errorf("previous user's bookings leaked: %v", got)
	}
}

func TestFetch_RoleSwitchDropsCache(t *testing.T) {
	svc := &stubService{
		findFunc: func(_ context.Context, _ string, role model.Role) ([]*model.Booking, error) {
			if role == model.RoleTutor {
				return nil, apperrors.Internal("down", nil)
			}
			return []*model.Booking{{ID: "as-student"}}, nil
		},
	}
	st := New(svc)

	if err := st.Fetch(context.Background(), "user-1", model.RoleStudent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = st.Fetch(context.Background(), "user-1", model.RoleTutor)
	if got := st.Bookings(); len(got) != 0 {
		t.Errorf("student-view bookings leaked into tutor view: %v", got)
	}
}

func TestApply_ReplacesOrPrepends(t *testing.T) {
	svc := &stubService{
		findFunc: func(_ context.Context, _ string, _ model.Role) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "a", Status: model.StatusPending},
				{ID: "b", Status: model.StatusPending},
			}, nil
		},
	}
	st := New(svc)
	if err := st.Fetch(context.Background(), "user-1", model.RoleTutor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st.Apply(&model.Booking{ID: "b", Status: model.StatusAccepted, Date: "2025-06-20", Time: "10:00"})
	got := st.Bookings()
	if len(got) != 2 {
		t.Fatalf("replace changed list length: %d", len(got))
	}
	if got[1].Status != model.StatusAccepted {
		t.Errorf("booking b not replaced: %q", got[1].Status)
	}

	st.Apply(&model.Booking{ID: "new", Status: model.StatusPending})
	got = st.Bookings()
	if len(got) != 3 || got[0].ID != "new" {
		t.Errorf("new booking not prepended: %v", got)
	}
}

func TestAccept_UpdatesCacheOnlyOnSuccess(t *testing.T) {
	svc := &stubService{
		findFunc: func(_ context.Context, _ string, _ model.Role) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "a", Status: model.StatusPending}}, nil
		},
		acceptFunc: func(_ context.Context, _ *model.Session, id, date, timeOfDay string) (*model.Booking, error) {
			if id != "a" {
				return nil, apperrors.NotFoundWithID("Booking", id)
			}
			return &model.Booking{ID: id, Status: model.StatusAccepted, Date: date, Time: timeOfDay}, nil
		},
	}
	st := New(svc)
	sess := &model.Session{UserID: "tutor-1", Role: model.RoleTutor}
	if err := st.Fetch(context.Background(), "tutor-1", model.RoleTutor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := st.Accept(context.Background(), sess, "ghost", "2025-06-20", "10:00"); err == nil {
		t.Fatal("expected an error")
	}
	if got := st.Bookings(); got[0].Status != model.StatusPending {
		t.Error("failed command must not touch the cache")
	}

	if _, err := st.Accept(context.Background(), sess, "a", "2025-06-20", "10:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := st.Bookings()
	if got[0].Status != model.StatusAccepted || got[0].Date != "2025-06-20" {
		t.Errorf("cache not updated with confirmed record: %+v", got[0])
	}
}

func TestClear(t *testing.T) {
	svc := &stubService{
		findFunc: func(_ context.Context, _ string, _ model.Role) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "a"}}, nil
		},
	}
	st := New(svc)
	if err := st.Fetch(context.Background(), "user-1", model.RoleStudent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st.Clear()
	if len(st.Bookings()) != 0 || st.Err() != nil || st.Loading() {
		t.Error("clear left state behind")
	}
}

func TestDashboard_BucketsCachedList(t *testing.T) {
	svc := &stubService{
		findFunc: func(_ context.Context, _ string, _ model.Role) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "p", Status: model.StatusPending},
				{ID: "u", Status: model.StatusAccepted, Date: "2025-06-20", Time: "10:00"},
				{ID: "x", Status: model.StatusAccepted, Date: "2025-06-10", Time: "10:00"},
			}, nil
		},
	}
	st := New(svc)
	if err := st.Fetch(context.Background(), "user-1", model.RoleTutor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := st.Dashboard(testNow)
	if len(d.Pending) != 1 || len(d.Upcoming) != 1 || len(d.Expired) != 1 {
		t.Errorf("unexpected buckets: pending=%d upcoming=%d expired=%d",
			len(d.Pending), len(d.Upcoming), len(d.Expired))
	}
	if d.Size() != 3 {
		t.Errorf("size = %d, want 3", d.Size())
	}
}
