package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"roomreserve/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64) (string, error) { return "token-123", nil }

func TestService_Register(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	s := NewService(users, stubJWT{})
	resp, err := s.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-123", resp.Token)
	require.NotNil(t, resp.User.Email)
	assert.Equal(t, "alice@example.com", *resp.User.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHash), []byte("secret123")))
	users.AssertExpectations(t)
}

func TestService_Register_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	email := "alice@example.com"
	users.On("GetByEmail", mock.Anything, email).Return(&domain.User{ID: 1, Email: &email}, nil)

	s := NewService(users, stubJWT{})
	_, err := s.Register(context.Background(), RegisterRequest{Email: email, Password: "secret123", Name: "Alice"})

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	email := "alice@example.com"
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, email).Return(&domain.User{ID: 7, Email: &email, PasswordHash: string(hash)}, nil)

	s := NewService(users, stubJWT{})

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := s.Login(context.Background(), LoginRequest{Email: email, Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "token-123", resp.Token)
		assert.Equal(t, int64(7), resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(context.Background(), LoginRequest{Email: email, Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	s := NewService(users, stubJWT{})
	_, err := s.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret123"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
