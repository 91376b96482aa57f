package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tasktracker/backend/domain"
	"github.com/tasktracker/backend/internal/validate"
	pkgauth "github.com/tasktracker/backend/pkg/auth"
	"github.com/tasktracker/backend/repository"
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response is the credential payload returned by both Register and Login.
type Response struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UseCase struct {
	users  repository.UserRepository
	hasher *pkgauth.Hasher
	tokens *pkgauth.TokenIssuer
	logger *zap.Logger
}

func New(users repository.UserRepository, hasher *pkgauth.Hasher, tokens *pkgauth.TokenIssuer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account and signs the caller in. The storage layer
// is the uniqueness authority for email; the lookup here only provides the
// friendly conflict message for the common case.
func (uc *UseCase) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	existing, err := uc.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, emailConflict(req.Email)
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailConflict(req.Email)
		}
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", created.ID))
	return uc.respond(created)
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same generic failure so accounts cannot be
// enumerated.
func (uc *UseCase) Login(ctx context.Context, req LoginRequest) (*Response, error) {
	if err := validateLogin(req); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "Invalid email or password.")
	}

	return uc.respond(user)
}

func (uc *UseCase) respond(user *domain.User) (*Response, error) {
	token, expiresAt, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Response{
		Token:     token,
		Email:     user.Email,
		FullName:  user.FullName,
		ExpiresAt: expiresAt,
	}, nil
}

func emailConflict(email string) error {
	return domain.NewError(domain.ErrCodeConflict, fmt.Sprintf("User with email '%s' already exists.", email))
}

func validateRegister(req RegisterRequest) error {
	errs := validate.NewErrors()
	validate.Required(errs, "FullName", req.FullName, "FullName is required.")
	validate.MaxLen(errs, "FullName", req.FullName, 100, "FullName cannot exceed 100 characters.")
	validate.Required(errs, "Email", req.Email, "Email is required.")
	validate.Email(errs, "Email", req.Email, "Invalid email format.")
	validate.Required(errs, "Password", req.Password, "Password is required.")
	validate.LenBetween(errs, "Password", req.Password, 6, 100, "Password must be between 6 and 100 characters.")
	return errs.Err()
}

func validateLogin(req LoginRequest) error {
	errs := validate.NewErrors()
	validate.Required(errs, "Email", req.Email, "Email is required.")
	validate.Email(errs, "Email", req.Email, "Invalid email format.")
	validate.Required(errs, "Password", req.Password, "Password is required.")
	return errs.Err()
}
