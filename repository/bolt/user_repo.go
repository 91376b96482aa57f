package bolt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	bboltlib "go.etcd.io/bbolt"

	"github.com/tasktracker/backend/domain"
	"github.com/tasktracker/backend/repository"
)

// userRecord is the stored shape. domain.User hides the password hash from
// JSON, so the record carries it explicitly.
type userRecord struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (rec userRecord) toUser() *domain.User {
	return &domain.User{
		ID:           rec.ID,
		FullName:     rec.FullName,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}
}

type userRepository struct {
	store *Store
}

// NewUserRepository returns a Bolt-backed user repository. The email index
// bucket is written in the same transaction as the user record, so duplicate
// registrations lose atomically.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user *domain.User
	err := r.store.db.View(func(tx *bboltlib.Tx) error {
		id := tx.Bucket(bucketUserEmails).Get([]byte(email))
		if id == nil {
			return domain.ErrUserNotFound
		}
		payload := tx.Bucket(bucketUsers).Get(id)
		if payload == nil {
			return domain.ErrUserNotFound
		}
		var rec userRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return err
		}
		user = rec.toUser()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	payload, err := json.Marshal(userRecord{
		ID:           user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	err = r.store.db.Update(func(tx *bboltlib.Tx) error {
		emails := tx.Bucket(bucketUserEmails)
		if emails.Get([]byte(user.Email)) != nil {
			return domain.ErrEmailTaken
		}
		if err := emails.Put([]byte(user.Email), []byte(user.ID)); err != nil {
			return err
		}
		return tx.Bucket(bucketUsers).Put([]byte(user.ID), payload)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
