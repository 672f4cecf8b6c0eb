package repositories

import (
	"errors"

	"healthcheck/internal/models"
)

// ErrDuplicateEmail is returned by Create when the store rejects the
// insert because the email is already registered. The unique index is
// the authoritative guard; callers may pre-check for a friendlier
// fast path, but must treat this error as the final word.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
