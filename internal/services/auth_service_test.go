package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"healthcheck/internal/models"
	"healthcheck/internal/repositories"
	"healthcheck/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	// Successful registration hashes the password and normalizes the email.
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("Test User", "  Test@Example.COM ", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Pre-check finds an existing account.
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.Register("Test User", "test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)

	// The pre-check can race; a duplicate error from the store is the
	// authoritative signal and maps to the same failure.
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("%w: test@example.com", repositories.ErrDuplicateEmail)).Once()
	_, err = authService.Register("Test User", "test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)

	// Any other store failure is not reported as a conflict.
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(fmt.Errorf("connection refused")).Once()
	_, err = authService.Register("Test User", "test@example.com", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful login returns the stored user.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	got, err := authService.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Name, got.Name)
	mockRepo.AssertExpectations(t)

	// Wrong password: generic failure.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.Login("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email: the same generic failure, so the two cases cannot
	// be told apart from the outside.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user with email nobody@example.com not found")).Once()
	_, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}
