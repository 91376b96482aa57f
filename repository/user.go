package repository

import (
	"context"

	"github.com/tasktracker/backend/domain"
)

// UserRepository persists registered identities. Create must enforce email
// uniqueness atomically and return domain.ErrEmailTaken on a duplicate; the
// use-case pre-check alone is not a guarantee under concurrent registrations.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
