package services

import (
	"errors"
	"fmt"
	"strings"

	"healthcheck/internal/models"
	"healthcheck/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any login failure. Lookup
// failure and password mismatch are deliberately indistinguishable so
// that the login form cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering with an email that
// already has an account.
var ErrEmailTaken = errors.New("email already registered")

// AuthService handles business logic for registration and login.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// Register creates a new account with a bcrypt-hashed password. The
// email is normalized to lower case before lookup and insert. The
// existence pre-check only provides a fast path for the common case;
// the store's unique index decides races, and its duplicate error is
// mapped to ErrEmailTaken as well.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates a user by email and password. Any failure,
// including an unknown email, returns ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// NormalizeEmail canonicalizes an email address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
