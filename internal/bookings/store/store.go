// Package store holds a caller's booking list between reads. It mirrors
// what a dashboard session sees: one list per user-and-role, refreshed on
// demand and patched in place when a command confirms a transition.
package store

import (
	"context"
	"sync"
	"time"

	"tutorhub/internal/bookings/projection"
	"tutorhub/internal/bookings/service"
	"tutorhub/pkg/model"
)

// Store caches the bookings visible to one user in one role. A fetch
// failure keeps the previously loaded list so the caller still has
// something to render alongside the error.
type Store struct {
	svc service.BookingService

	mu       sync.RWMutex
	userID   string
	role     model.Role
	bookings []*model.Booking
	loading  bool
	err      error
}

func New(svc service.BookingService) *Store {
	return &Store{svc: svc}
}

// Fetch loads the booking list for the given user and role. Switching to a
// different user or role drops the cached list first, so a stale view from
// the previous identity is never served.
func (s *Store) Fetch(ctx context.Context, userID string, role model.Role) error {
	s.mu.Lock()
	if s.userID != userID || s.role != role {
		s.bookings = nil
		s.err = nil
	}
	s.userID = userID
	s.role = role
	s.loading = true
	s.mu.Unlock()

	bookings, err := s.svc.FindForUser(ctx, userID, role)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	s.bookings = bookings
	return nil
}

// Request creates a booking through the service and adds the confirmed
// record to the cache.
func (s *Store) Request(ctx context.Context, sess *model.Session, input *service.RequestInput) (*model.Booking, error) {
	booking, err := s.svc.Request(ctx, sess, input)
	if err != nil {
		return nil, err
	}
	s.Apply(booking)
	return booking, nil
}

// Accept schedules a pending booking and replaces the cached record with
// the server-confirmed result. A failed command leaves the cache untouched.
func (s *Store) Accept(ctx context.Context, sess *model.Session, id, date, timeOfDay string) (*model.Booking, error) {
	booking, err := s.svc.Accept(ctx, sess, id, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	s.Apply(booking)
	return booking, nil
}

func (s *Store) Reject(ctx context.Context, sess *model.Session, id, reason string) (*model.Booking, error) {
	booking, err := s.svc.Reject(ctx, sess, id, reason)
	if err != nil {
		return nil, err
	}
	s.Apply(booking)
	return booking, nil
}

func (s *Store) Complete(ctx context.Context, sess *model.Session, id string) (*model.Booking, error) {
	booking, err := s.svc.Complete(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	s.Apply(booking)
	return booking, nil
}

// Apply merges a server-confirmed booking into the cached list: a new
// record is prepended, an existing one is replaced wholesale. Records are
// never patched from client-side guesses.
func (s *Store) Apply(booking *model.Booking) {
	if booking == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookings {
		if b.ID == booking.ID {
			s.bookings[i] = booking
			return
		}
	}
	s.bookings = append([]*model.Booking{booking}, s.bookings...)
}

// Clear drops the cached list and error, e.g. on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.role = ""
	s.bookings = nil
	s.loading = false
	s.err = nil
}

func (s *Store) Bookings() []*model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Dashboard buckets the cached list as of now. The cache is not refreshed;
// call Fetch first for current data.
func (s *Store) Dashboard(now time.Time) projection.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return projection.Build(s.bookings, now)
}
