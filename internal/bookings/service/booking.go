package service

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingserrors "tutorhub/internal/bookings/errors"
	"tutorhub/internal/bookings/events"
	"tutorhub/internal/bookings/lifecycle"
	"tutorhub/internal/bookings/repository"
	"tutorhub/internal/bookings/validator"
	"tutorhub/pkg/config"
	apperrors "tutorhub/pkg/errors"
	"tutorhub/pkg/model"
	"tutorhub/pkg/sanitizer"
)

const fallbackSubject = "Not specified"

// TutorDirectory resolves tutor profiles for the creation-time snapshot.
// Implemented by the tutors service; a missing tutor surfaces as an
// AppError with CodeNotFound.
type TutorDirectory interface {
	FindByID(ctx context.Context, id string) (*model.Tutor, error)
}

// RequestInput is a student's booking request. Subject and Message are
// optional; the subject falls back to the tutor's registered subject.
type RequestInput struct {
	TutorID string `json:"tutor_id"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}

type BookingService interface {
	Request(ctx context.Context, sess *model.Session, input *RequestInput) (*model.Booking, error)
	Accept(ctx context.Context, sess *model.Session, id, date, timeOfDay string) (*model.Booking, error)
	Reject(ctx context.Context, sess *model.Session, id, reason string) (*model.Booking, error)
	Complete(ctx context.Context, sess *model.Session, id string) (*model.Booking, error)
	GetByID(ctx context.Context, sess *model.Session, id string) (*model.Booking, error)
	FindForUser(ctx context.Context, userID string, role model.Role) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	tutors    TutorDirectory
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	tutors TutorDirectory,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		tutors:    tutors,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Request creates a pending booking with the contact snapshot copied from
// the student's session and the tutor's profile. No slot is chosen here;
// the tutor proposes date and time on acceptance.
func (s *bookingService) Request(ctx context.Context, sess *model.Session, input *RequestInput) (*model.Booking, error) {
	if sess == nil || sess.UserID == "" {
		return nil, apperrors.Validation("Student identity is required", nil)
	}
	if input == nil || input.TutorID == "" {
		return nil, apperrors.Validation("Tutor ID is required", nil)
	}

	tutor, err := s.tutors.FindByID(ctx, input.TutorID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return nil, apperrors.NotFoundWithID("Tutor", input.TutorID)
		}
		return nil, apperrors.Internal("Failed to load tutor profile", err)
	}

	subject := sanitizer.NormalizeSubject(input.Subject)
	if subject == "" {
		subject = sanitizer.NormalizeSubject(tutor.Subject)
	}
	if subject == "" {
		subject = fallbackSubject
	}

	studentName := sanitizer.NormalizeName(sess.Name)
	if studentName == "" {
		studentName = sess.Email
	}

	booking := &model.Booking{
		TutorID:      tutor.ID,
		StudentID:    sess.UserID,
		TutorName:    tutor.Name,
		TutorEmail:   tutor.Email,
		TutorPhone:   tutor.Phone,
		StudentName:  studentName,
		StudentEmail: sanitizer.NormalizeEmail(sess.Email),
		Subject:      subject,
		Message:      sanitizer.TrimAndNormalize(input.Message),
		Status:       model.StatusPending,
	}

	if err := s.validate(booking); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "tutor_id", booking.TutorID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.publisher.Publish(ctx, booking, events.TypeRequested)
	s.cfg.Log.Info("Booking requested",
		"id", booking.ID,
		"tutor_id", booking.TutorID,
		"student_id", booking.StudentID,
		"subject", booking.Subject,
	)
	return booking, nil
}

// Accept schedules a pending booking. The proposed slot must parse and lie
// in the future; the pending precondition is enforced atomically by the
// repository's conditional update.
func (s *bookingService) Accept(ctx context.Context, sess *model.Session, id, date, timeOfDay string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	now := s.now()
	at, ok := lifecycle.ScheduledAt(date, timeOfDay, now.Location())
	if !ok {
		return nil, apperrors.Validation("Date and time are required and must be valid", map[string]any{
			"date": date,
			"time": timeOfDay,
		})
	}
	if !at.After(now) {
		return nil, apperrors.Validation("Scheduled time must be in the future", map[string]any{
			"scheduled": at.Format(time.RFC3339),
		})
	}

	return s.transition(ctx, sess, id, model.StatusPending, repository.TransitionPatch{
		Status: model.StatusAccepted,
		Date:   date,
		Time:   timeOfDay,
	}, events.TypeAccepted)
}

// Reject closes a pending booking with a mandatory reason. Rejection is
// terminal.
func (s *bookingService) Reject(ctx context.Context, sess *model.Session, id, reason string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation("Rejection reason is required", nil)
	}

	return s.transition(ctx, sess, id, model.StatusPending, repository.TransitionPatch{
		Status:       model.StatusRejected,
		RejectReason: reason,
	}, events.TypeRejected)
}

// Complete marks an accepted booking as held. The source does not require
// the scheduled time to have passed, and neither do we.
func (s *bookingService) Complete(ctx context.Context, sess *model.Session, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	return s.transition(ctx, sess, id, model.StatusAccepted, repository.TransitionPatch{
		Status: model.StatusCompleted,
	}, events.TypeCompleted)
}

func (s *bookingService) GetByID(ctx context.Context, sess *model.Session, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if sess != nil && booking.TutorID != sess.UserID && booking.StudentID != sess.UserID {
		return nil, apperrors.Forbidden("You are not a party to this booking")
	}
	return booking, nil
}

func (s *bookingService) FindForUser(ctx context.Context, userID string, role model.Role) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	var bookings []*model.Booking
	var err error
	switch role {
	case model.RoleTutor:
		bookings, err = s.repo.FindByTutor(ctx, userID)
	case model.RoleStudent:
		bookings, err = s.repo.FindByStudent(ctx, userID)
	default:
		return nil, apperrors.InvalidInput("Role must be student or tutor")
	}
	if err != nil {
		s.cfg.Log.Error("Failed to fetch bookings", "user_id", userID, "role", role, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// transition enforces that only the assigned tutor moves a booking, then
// delegates the source-state check to the repository so concurrent
// commands on the same record cannot both succeed.
func (s *bookingService) transition(
	ctx context.Context,
	sess *model.Session,
	id string,
	from model.Status,
	patch repository.TransitionPatch,
	eventType events.Type,
) (*model.Booking, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if sess != nil && existing.TutorID != sess.UserID {
		return nil, apperrors.Forbidden("Only the assigned tutor may update this booking")
	}
	if existing.Status != from {
		return nil, s.stateConflict(existing.Status, from)
	}

	updated, err := s.repo.Transition(ctx, id, from, patch)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Booking", id)
		case errors.Is(err, bookingserrors.ErrStateConflict):
			return nil, s.stateConflict("", from)
		default:
			s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
			return nil, apperrors.Internal("Failed to update booking", err)
		}
	}

	s.publisher.Publish(ctx, updated, eventType)
	s.cfg.Log.Info("Booking updated",
		"id", updated.ID,
		"status", updated.Status,
		"tutor_id", updated.TutorID,
	)
	return updated, nil
}

func (s *bookingService) stateConflict(current, required model.Status) error {
	if current == "" {
		return apperrors.StateConflict("Booking is no longer " + string(required))
	}
	return apperrors.StateConflict("Booking is " + string(current) + ", not " + string(required))
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
