package service

import (
	"context"
	"testing"
	"time"

	tutorserrors "tutorhub/internal/tutors/errors"
	"tutorhub/internal/tutors/validator"
	"tutorhub/pkg/config"
	apperrors "tutorhub/pkg/errors"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/model"
)

type mockTutorRepository struct {
	createFunc       func(ctx context.Context, tutor *model.Tutor) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Tutor, error)
	findByUserIDFunc func(ctx context.Context, userID string) (*model.Tutor, error)
	searchFunc       func(ctx context.Context, filter model.TutorFilter, limit int, offset int64) ([]*model.Tutor, int64, error)
}

func (m *mockTutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tutor)
	}
	tutor.ID = "tutor-1"
	return nil
}

func (m *mockTutorRepository) FindByID(ctx context.Context, id string) (*model.Tutor, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, tutorserrors.ErrNotFound
}

func (m *mockTutorRepository) FindByUserID(ctx context.Context, userID string) (*model.Tutor, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, tutorserrors.ErrNotFound
}

func (m *mockTutorRepository) Search(ctx context.Context, filter model.TutorFilter, limit int, offset int64) ([]*model.Tutor, int64, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, filter, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockTutorRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return nil
}

type mockBlobStore struct {
	putFunc func(ctx context.Context, name string, data []byte) (string, error)
	getFunc func(ctx context.Context, fileID string) ([]byte, error)
}

func (m *mockBlobStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if m.putFunc != nil {
		return m.putFunc(ctx, name, data)
	}
	return "file-" + name, nil
}

func (m *mockBlobStore) Get(ctx context.Context, fileID string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, fileID)
	}
	return []byte("stored"), nil
}

func newTestService(repo *mockTutorRepository, blobs *mockBlobStore) TutorService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewTutorService(repo, blobs, validator.NewTutorValidator(cfg.Log), cfg)
}

func validInput() *RegisterInput {
	return &RegisterInput{
		Name:       "  Dr.   Mehta ",
		Email:      " Mehta@Example.COM ",
		Phone:      "+91 98123-45678",
		Subject:    "Physics",
		Location:   "Pune",
		Languages:  "English, Hindi",
		Standard:   "11-12",
		Fees:       800,
		Gender:     "Male",
		Experience: "8 years",

		IdentityProofName:      "aadhaar.pdf",
		IdentityProof:          []byte("identity"),
		QualificationProofName: "msc.pdf",
		QualificationProof:     []byte("degree"),
	}
}

func TestRegister(t *testing.T) {
	var created *model.Tutor
	repo := &mockTutorRepository{
		createFunc: func(_ context.Context, tutor *model.Tutor) error {
			tutor.ID = "tutor-1"
			created = tutor
			return nil
		},
	}
	var uploads []string
	blobs := &mockBlobStore{
		putFunc: func(_ context.Context, name string, _ []byte) (string, error) {
			uploads = append(uploads, name)
			return "file-" + name, nil
		},
	}
	svc := newTestService(repo, blobs)

	sess := &model.Session{UserID: "user-9", Email: "mehta@example.com"}
	got, err := svc.Register(context.Background(), sess, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("repository never received the tutor")
	}
	if got.Name != "Dr. Mehta" {
		t.Errorf("name not normalized: %q", got.Name)
	}
	if got.Email != "mehta@example.com" {
		t.Errorf("email not normalized: %q", got.Email)
	}
	if got.Phone != "+919812345678" {
		t.Errorf("phone not normalized: %q", got.Phone)
	}
	if got.Gender != "male" {
		t.Errorf("gender not lowercased: %q", got.Gender)
	}
	if got.Verified {
		t.Error("new profiles must start unverified")
	}
	if got.UserID != "user-9" {
		t.Errorf("user id = %q", got.UserID)
	}
	if len(uploads) != 2 {
		t.Fatalf("expected both proofs uploaded, got %v", uploads)
	}
	if got.IdentityProofID != "file-aadhaar.pdf" || got.QualificationProofID != "file-msc.pdf" {
		t.Errorf("proof IDs = %q / %q", got.IdentityProofID, got.QualificationProofID)
	}
}

func TestRegister_SecondProfileRejected(t *testing.T) {
	repo := &mockTutorRepository{
		findByUserIDFunc: func(_ context.Context, _ string) (*model.Tutor, error) {
			return &model.Tutor{ID: "existing"}, nil
		},
	}
	svc := newTestService(repo, &mockBlobStore{})

	_, err := svc.Register(context.Background(), &model.Session{UserID: "user-9"}, validInput())
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestRegister_InvalidPhone(t *testing.T) {
	svc := newTestService(&mockTutorRepository{}, &mockBlobStore{})

	input := validInput()
	input.Phone = "not-a-phone"
	_, err := svc.Register(context.Background(), &model.Session{UserID: "user-9"}, input)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestRegister_MissingRequiredFields(t *testing.T) {
	svc := newTestService(&mockTutorRepository{}, &mockBlobStore{})

	input := validInput()
	input.Subject = ""
	_, err := svc.Register(context.Background(), &model.Session{UserID: "user-9"}, input)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestSearch_NormalizesPagination(t *testing.T) {
	var gotLimit int
	var gotOffset int64
	repo := &mockTutorRepository{
		searchFunc: func(_ context.Context, _ model.TutorFilter, limit int, offset int64) ([]*model.Tutor, int64, error) {
			gotLimit, gotOffset = limit, offset
			return nil, 0, nil
		},
	}
	svc := newTestService(repo, &mockBlobStore{})

	if _, _, err := svc.Search(context.Background(), model.TutorFilter{}, -5, -10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit <= 0 {
		t.Errorf("limit not defaulted: %d", gotLimit)
	}
	if gotOffset != 0 {
		t.Errorf("offset not clamped: %d", gotOffset)
	}
}

func TestProof_OnlyOwner(t *testing.T) {
	repo := &mockTutorRepository{
		findByIDFunc: func(_ context.Context, id string) (*model.Tutor, error) {
			return &model.Tutor{
				ID:                   id,
				UserID:               "owner",
				IdentityProofID:      "file-identity",
				QualificationProofID: "file-degree",
			}, nil
		},
	}
	svc := newTestService(repo, &mockBlobStore{})

	owner := &model.Session{UserID: "owner"}
	if _, err := svc.Proof(context.Background(), owner, "tutor-1", "file-identity"); err != nil {
		t.Errorf("owner read failed: %v", err)
	}

	stranger := &model.Session{UserID: "someone-else"}
	if _, err := svc.Proof(context.Background(), stranger, "tutor-1", "file-identity"); !apperrors.IsCode(err, apperrors.CodeForbidden) {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}

	if _, err := svc.Proof(context.Background(), owner, "tutor-1", "some-other-file"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND for unrelated file, got %v", err)
	}
}
