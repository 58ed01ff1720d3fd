package service

import (
	"context"
	"errors"

	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/repository"
	"photogram/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Signup and signin failures carry the exact message shown to the user.
var (
	ErrPasswordsNotMatching = errors.New("Passwords Not Matching")
	ErrEmailTaken           = errors.New("Email Already Taken")
	ErrUsernameTaken        = errors.New("Username Already Taken")
	ErrCredentialsInvalid   = errors.New("Credentials Invalid")
)

// AccountService handles signup and authentication.
type AccountService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

// NewAccountService creates a new account service
func NewAccountService(users repository.UserRepository, profiles repository.ProfileRepository) *AccountService {
	return &AccountService{users: users, profiles: profiles}
}

// Signup registers a new account and its empty profile. Checks run in a
// fixed order so the user always sees the first failure: password match,
// then email uniqueness, then username uniqueness.
func (s *AccountService) Signup(ctx context.Context, username, email, password, password2 string) (*models.User, error) {
	if password != password2 {
		observability.SignupFailures.WithLabelValues("password_mismatch").Inc()
		return nil, ErrPasswordsNotMatching
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.SignupFailures.WithLabelValues("email_taken").Inc()
		return nil, ErrEmailTaken
	}

	existing, err = s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.SignupFailures.WithLabelValues("username_taken").Inc()
		return nil, ErrUsernameTaken
	}

	// Format checks run after the three ordered checks so the first failure
	// the user sees is always one of the pinned messages.
	if err := validation.ValidateUsername(username); err != nil {
		observability.SignupFailures.WithLabelValues("username_invalid").Inc()
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		observability.SignupFailures.WithLabelValues("email_invalid").Inc()
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID: user.ID,
		Avatar: models.DefaultAvatar,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. An unknown username and
// a wrong password produce the same error.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrCredentialsInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrCredentialsInvalid
	}
	return user, nil
}
