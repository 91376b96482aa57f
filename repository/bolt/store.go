// Package bolt provides an embedded single-file storage backend so the
// service can run with no external dependencies.
package bolt

import (
	"context"
	"os"
	"path/filepath"
	"time"

	bboltlib "go.etcd.io/bbolt"
)

var (
	bucketTasks      = []byte("tasks")
	bucketTaskIndex  = []byte("tasks_by_id")
	bucketUsers      = []byte("users")
	bucketUserEmails = []byte("user_emails")
)

// Store wraps a BoltDB file shared by the task and user repositories.
type Store struct {
	db *bboltlib.DB
}

// Open initializes the BoltDB file and ensures all buckets exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bboltlib.Open(path, 0o600, &bboltlib.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bboltlib.Tx) error {
		for _, bucket := range [][]byte{bucketTasks, bucketTaskIndex, bucketUsers, bucketUserEmails} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Ping reports whether the database file is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return bboltlib.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bboltlib.Tx) error { return nil })
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
