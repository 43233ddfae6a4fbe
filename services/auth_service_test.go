package services

import (
	"notekeeper/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

var _ UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("CreateUser", mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "alice" && u.ID != "" && u.PasswordHash != "supersecret"
	})).Return(nil)

	service := NewAuthService(repo, "test-secret")
	user, err := service.Register("alice", "supersecret")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &models.User{ID: "u1", Username: "alice", PasswordHash: string(hash)}

	t.Run("valid credentials yield a usable token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByUsername", "alice").Return(stored, nil)
		repo.On("TouchLastLogin", "u1").Return(nil)

		service := NewAuthService(repo, "test-secret")
		token, user, err := service.Login("alice", "supersecret")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)

		subject, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", subject)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByUsername", "alice").Return(stored, nil)
		repo.On("GetUserByUsername", "nobody").Return(nil, nil)

		service := NewAuthService(repo, "test-secret")

		_, _, errWrong := service.Login("alice", "not-it")
		_, _, errUnknown := service.Login("nobody", "whatever")

		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, "test-secret")

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := NewAuthService(repo, "different-secret")
		token, err := other.generateToken("u1")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
