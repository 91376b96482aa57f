package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tasktracker/backend/domain"
	pkgauth "github.com/tasktracker/backend/pkg/auth"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newUseCase(repo *MockUserRepository) (*UseCase, *pkgauth.Hasher) {
	hasher := pkgauth.NewHasher()
	tokens := pkgauth.NewTokenIssuer(pkgauth.TokenConfig{
		Secret:   "test-secret",
		Issuer:   "task-tracker",
		Audience: "task-tracker-api",
		TTL:      time.Hour,
	})
	return New(repo, hasher, tokens, nil), hasher
}

func TestRegisterSuccess(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, domain.ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "jane@example.com" && u.FullName == "Jane Doe" && u.PasswordHash != ""
	})).Return(&domain.User{
		ID:       "user-1",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
	}, nil)

	uc, hasher := newUseCase(repo)
	result, err := uc.Register(context.Background(), RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "jane@example.com", result.Email)
	assert.Equal(t, "Jane Doe", result.FullName)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	repo.AssertExpectations(t)

	// stored hash must verify against the original password
	created := repo.Calls[1].Arguments.Get(1).(*domain.User)
	assert.True(t, hasher.Verify("secret-pass", created.PasswordHash))
}

func TestRegisterExistingEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:    "user-1",
		Email: "jane@example.com",
	}, nil)

	uc, _ := newUseCase(repo)
	_, err := uc.Register(context.Background(), RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret-pass",
	})

	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
	assert.Contains(t, err.Error(), "User with email 'jane@example.com' already exists.")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterLostRaceOnEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, domain.ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrEmailTaken)

	uc, _ := newUseCase(repo)
	_, err := uc.Register(context.Background(), RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret-pass",
	})

	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestRegisterValidationShortCircuits(t *testing.T) {
	repo := new(MockUserRepository)

	uc, _ := newUseCase(repo)
	_, err := uc.Register(context.Background(), RegisterRequest{})

	require.Error(t, err)
	var dErr *domain.Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, domain.ErrCodeInvalid, dErr.Code)
	assert.Len(t, dErr.Fields, 3)
	assert.Contains(t, dErr.Fields, "FullName")
	assert.Contains(t, dErr.Fields, "Email")
	assert.Contains(t, dErr.Fields, "Password")
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	repo := new(MockUserRepository)

	uc, _ := newUseCase(repo)
	_, err := uc.Register(context.Background(), RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "12345",
	})

	require.Error(t, err)
	var dErr *domain.Error
	require.ErrorAs(t, err, &dErr)
	assert.Contains(t, dErr.Fields["Password"], "Password must be between 6 and 100 characters.")
}

func TestLoginSuccess(t *testing.T) {
	repo := new(MockUserRepository)
	uc, hasher := newUseCase(repo)

	hash, err := hasher.Hash("secret-pass")
	require.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           "user-1",
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: hash,
	}, nil)

	result, err := uc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "secret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Jane Doe", result.FullName)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := new(MockUserRepository)
	uc, hasher := newUseCase(repo)

	hash, err := hasher.Hash("secret-pass")
	require.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "jane@example.com",
		PasswordHash: hash,
	}, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrUserNotFound)

	_, wrongPassErr := uc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-pass",
	})
	_, unknownEmailErr := uc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret-pass",
	})

	require.Error(t, wrongPassErr)
	require.Error(t, unknownEmailErr)
	assert.True(t, domain.IsDomainError(wrongPassErr, domain.ErrCodeUnauthorized))
	assert.True(t, domain.IsDomainError(unknownEmailErr, domain.ErrCodeUnauthorized))
	assert.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())
	assert.Equal(t, "Invalid email or password.", wrongPassErr.Error())
}

func TestLoginValidationShortCircuits(t *testing.T) {
	repo := new(MockUserRepository)

	uc, _ := newUseCase(repo)
	_, err := uc.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "secret-pass"})

	require.Error(t, err)
	var dErr *domain.Error
	require.ErrorAs(t, err, &dErr)
	assert.Contains(t, dErr.Fields["Email"], "Invalid email format.")
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
