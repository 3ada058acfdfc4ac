package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tutorserrors "tutorhub/internal/tutors/errors"
	"tutorhub/internal/tutors/repository"
	"tutorhub/internal/tutors/validator"
	"tutorhub/pkg/blob"
	"tutorhub/pkg/config"
	apperrors "tutorhub/pkg/errors"
	"tutorhub/pkg/model"
	"tutorhub/pkg/sanitizer"
)

// RegisterInput is a tutor registration: the profile fields plus the two
// verification documents uploaded alongside the form.
type RegisterInput struct {
	Name          string
	Email         string
	Phone         string
	Subject       string
	Location      string
	Languages     string
	Standard      string
	Fees          int
	Bio           string
	Experience    string
	Gender        string
	Qualification string

	IdentityProofName      string
	IdentityProof          []byte
	QualificationProofName string
	QualificationProof     []byte
}

type TutorService interface {
	Register(ctx context.Context, sess *model.Session, input *RegisterInput) (*model.Tutor, error)
	FindByID(ctx context.Context, id string) (*model.Tutor, error)
	FindByUserID(ctx context.Context, userID string) (*model.Tutor, error)
	Search(ctx context.Context, filter model.TutorFilter, limit int, offset int64) ([]*model.Tutor, int64, error)
	Proof(ctx context.Context, sess *model.Session, tutorID, fileID string) ([]byte, error)
}

type tutorService struct {
	repo      repository.TutorRepository
	blobs     blob.Store
	validator *validator.TutorValidator
	cfg       *config.Config
}

func NewTutorService(
	repo repository.TutorRepository,
	blobs blob.Store,
	tutorValidator *validator.TutorValidator,
	cfg *config.Config,
) TutorService {
	return &tutorService{
		repo:      repo,
		blobs:     blobs,
		validator: tutorValidator,
		cfg:       cfg,
	}
}

// Register creates an unverified tutor profile for the authenticated user.
// Proof documents are stored first so the profile never references a file
// that failed to upload; a user registers at most one profile.
func (s *tutorService) Register(ctx context.Context, sess *model.Session, input *RegisterInput) (*model.Tutor, error) {
	if sess == nil || sess.UserID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	if input == nil {
		return nil, apperrors.InvalidInput("Registration input is required")
	}

	if _, err := s.repo.FindByUserID(ctx, sess.UserID); err == nil {
		return nil, apperrors.Conflict("A tutor profile already exists for this account")
	} else if !errors.Is(err, tutorserrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to check existing profile", err)
	}

	phone := sanitizer.NormalizePhone(input.Phone)
	if strings.TrimSpace(input.Phone) != "" && phone == "" {
		return nil, apperrors.Validation("Phone number is not valid", map[string]any{"phone": input.Phone})
	}

	tutor := &model.Tutor{
		UserID:        sess.UserID,
		Name:          sanitizer.NormalizeName(input.Name),
		Email:         sanitizer.NormalizeEmail(input.Email),
		Phone:         phone,
		Subject:       sanitizer.NormalizeSubject(input.Subject),
		Location:      sanitizer.TrimAndNormalize(input.Location),
		Languages:     sanitizer.TrimAndNormalize(input.Languages),
		Standard:      sanitizer.TrimAndNormalize(input.Standard),
		Fees:          sanitizer.NormalizeFees(input.Fees),
		Bio:           sanitizer.TrimAndNormalize(input.Bio),
		Experience:    sanitizer.TrimAndNormalize(input.Experience),
		Gender:        strings.ToLower(strings.TrimSpace(input.Gender)),
		Qualification: sanitizer.TrimAndNormalize(input.Qualification),
		Verified:      false,
	}
	if tutor.Email == "" {
		tutor.Email = sanitizer.NormalizeEmail(sess.Email)
	}

	if err := s.validator.Validate(tutor); err != nil {
		s.cfg.Log.Warn("Tutor validation failed", "user_id", sess.UserID, "error", err)
		return nil, apperrors.Validation("Tutor validation failed", map[string]any{"error": err.Error()})
	}

	if len(input.IdentityProof) > 0 {
		fileID, err := s.blobs.Put(ctx, input.IdentityProofName, input.IdentityProof)
		if err != nil {
			return nil, apperrors.Internal("Failed to store identity proof", err)
		}
		tutor.IdentityProofID = fileID
	}
	if len(input.QualificationProof) > 0 {
		fileID, err := s.blobs.Put(ctx, input.QualificationProofName, input.QualificationProof)
		if err != nil {
			return nil, apperrors.Internal("Failed to store qualification proof", err)
		}
		tutor.QualificationProofID = fileID
	}

	if err := s.repo.Create(ctx, tutor); err != nil {
		s.cfg.Log.Error("Failed to create tutor", "user_id", sess.UserID, "error", err)
		return nil, apperrors.Internal("Failed to create tutor profile", err)
	}

	s.cfg.Log.Info("Tutor registered",
		"id", tutor.ID,
		"user_id", tutor.UserID,
		"subject", tutor.Subject,
	)
	return tutor, nil
}

func (s *tutorService) FindByID(ctx context.Context, id string) (*model.Tutor, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Tutor ID cannot be empty")
	}

	tutor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, tutorserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Tutor", id)
		}
		return nil, apperrors.Internal("Failed to retrieve tutor", err)
	}
	return tutor, nil
}

func (s *tutorService) FindByUserID(ctx context.Context, userID string) (*model.Tutor, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	tutor, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, tutorserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Tutor profile")
		}
		return nil, apperrors.Internal("Failed to retrieve tutor", err)
	}
	return tutor, nil
}

func (s *tutorService) Search(ctx context.Context, filter model.TutorFilter, limit int, offset int64) ([]*model.Tutor, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	tutors, total, err := s.repo.Search(ctx, filter, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Tutor search failed", "error", err)
		return nil, 0, apperrors.Internal("Failed to search tutors", err)
	}
	return tutors, total, nil
}

// Proof streams a verification document back to its owner. Only the tutor
// who uploaded the file may read it.
func (s *tutorService) Proof(ctx context.Context, sess *model.Session, tutorID, fileID string) ([]byte, error) {
	if sess == nil || sess.UserID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	tutor, err := s.FindByID(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if tutor.UserID != sess.UserID {
		return nil, apperrors.Forbidden("You may only access your own documents")
	}
	if fileID != tutor.IdentityProofID && fileID != tutor.QualificationProofID {
		return nil, apperrors.NotFoundWithID("Document", fileID)
	}

	data, err := s.blobs.Get(ctx, fileID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("Failed to read document %s", fileID), err)
	}
	return data, nil
}
