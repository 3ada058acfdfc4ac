package service

import (
	"context"
	"errors"
	"strings"

	accountserrors "tutorhub/internal/accounts/errors"
	"tutorhub/internal/accounts/repository"
	"tutorhub/pkg/config"
	apperrors "tutorhub/pkg/errors"
	"tutorhub/pkg/model"
	"tutorhub/pkg/sanitizer"
	"tutorhub/pkg/session"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is a freshly issued session: the token plus the account it
// identifies.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AccountService interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthResult, error)
	Login(ctx context.Context, input *LoginInput) (*AuthResult, error)
	CurrentUser(ctx context.Context, sess *model.Session) (*model.User, error)
	ChooseRole(ctx context.Context, sess *model.Session, role model.Role) (*AuthResult, error)
}

type accountService struct {
	repo     repository.UserRepository
	sessions *session.Manager
	cfg      *config.Config
}

func NewAccountService(repo repository.UserRepository, sessions *session.Manager, cfg *config.Config) AccountService {
	return &accountService{
		repo:     repo,
		sessions: sessions,
		cfg:      cfg,
	}
}

// Signup creates an account with no role yet; the user picks student or
// tutor afterwards via ChooseRole.
func (s *accountService) Signup(ctx context.Context, input *SignupInput) (*AuthResult, error) {
	if input == nil {
		return nil, apperrors.InvalidInput("Signup input is required")
	}

	name := sanitizer.NormalizeName(input.Name)
	email := sanitizer.NormalizeEmail(input.Email)
	if name == "" || email == "" {
		return nil, apperrors.Validation("Name and email are required", nil)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.Validation("Password must be at least 8 characters", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, accountserrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("An account with this email already exists")
		}
		s.cfg.Log.Error("Failed to create user", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	s.cfg.Log.Info("Account created", "id", user.ID, "email", user.Email)
	return s.issue(user)
}

func (s *accountService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	if input == nil {
		return nil, apperrors.InvalidInput("Login input is required")
	}

	email := sanitizer.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperrors.Validation("Email and password are required", nil)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountserrors.ErrNotFound) {
			// Same answer as a bad password; do not reveal which emails exist.
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, apperrors.Internal("Failed to look up account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	s.cfg.Log.Info("Login succeeded", "id", user.ID)
	return s.issue(user)
}

func (s *accountService) CurrentUser(ctx context.Context, sess *model.Session) (*model.User, error) {
	if sess == nil || sess.UserID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	user, err := s.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, accountserrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Account no longer exists")
		}
		return nil, apperrors.Internal("Failed to look up account", err)
	}
	return user, nil
}

// ChooseRole records the account's role and issues a replacement token that
// carries it, since role is baked into the session claims.
func (s *accountService) ChooseRole(ctx context.Context, sess *model.Session, role model.Role) (*AuthResult, error) {
	if sess == nil || sess.UserID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	switch role {
	case model.RoleStudent, model.RoleTutor:
	default:
		return nil, apperrors.Validation("Role must be student or tutor", map[string]any{
			"role": strings.TrimSpace(string(role)),
		})
	}

	if err := s.repo.SetRole(ctx, sess.UserID, role); err != nil {
		if errors.Is(err, accountserrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Account no longer exists")
		}
		s.cfg.Log.Error("Failed to set role", "id", sess.UserID, "error", err)
		return nil, apperrors.Internal("Failed to update account", err)
	}

	user, err := s.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, apperrors.Internal("Failed to reload account", err)
	}

	s.cfg.Log.Info("Role selected", "id", user.ID, "role", role)
	return s.issue(user)
}

func (s *accountService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.sessions.Issue(user)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue session token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
