package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktracker/backend/domain"
	"github.com/tasktracker/backend/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStorePing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, store.Ping(ctx))
}

func TestTaskCreateAndGet(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))

	created, err := repo.Create(context.Background(), &domain.TaskItem{
		Title:     "Write report",
		Status:    domain.StatusPending,
		Priority:  domain.PriorityHigh,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Write report", found.Title)
	assert.Equal(t, domain.StatusPending, found.Status)
	assert.Equal(t, domain.PriorityHigh, found.Priority)
}

func TestTaskGetMissing(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))

	_, err := repo.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskListKeepsCreationOrder(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := repo.Create(context.Background(), &domain.TaskItem{
			Title:    title,
			Status:   domain.StatusPending,
			Priority: domain.PriorityMedium,
		})
		require.NoError(t, err)
	}

	tasks, err := repo.List(context.Background(), repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, title := range titles {
		assert.Equal(t, title, tasks[i].Title)
	}
}

func TestTaskListFilters(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))

	seed := []domain.TaskItem{
		{Title: "a", Status: domain.StatusPending, Priority: domain.PriorityLow},
		{Title: "b", Status: domain.StatusInProgress, Priority: domain.PriorityHigh},
		{Title: "c", Status: domain.StatusPending, Priority: domain.PriorityHigh},
	}
	for i := range seed {
		_, err := repo.Create(context.Background(), &seed[i])
		require.NoError(t, err)
	}

	byStatus, err := repo.List(context.Background(), repository.TaskFilter{Status: domain.StatusPending})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byBoth, err := repo.List(context.Background(), repository.TaskFilter{
		Status:   domain.StatusPending,
		Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "c", byBoth[0].Title)
}

func TestTaskUpdate(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))

	created, err := repo.Create(context.Background(), &domain.TaskItem{
		Title:    "task",
		Status:   domain.StatusPending,
		Priority: domain.PriorityMedium,
	})
	require.NoError(t, err)

	created.Status = domain.StatusInProgress
	_, err = repo.Update(context.Background(), created)
	require.NoError(t, err)

	found, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, found.Status)

	// update must not disturb listing order
	tasks, err := repo.List(context.Background(), repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestTaskUpdateMissing(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))

	_, err := repo.Update(context.Background(), &domain.TaskItem{ID: "no-such-id", Title: "x"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUserCreateAndGet(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	created, err := repo.Create(context.Background(), &domain.User{
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "salt:hash",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Jane Doe", found.FullName)
	// hash must survive the round trip even though it never leaves the API
	assert.Equal(t, "salt:hash", found.PasswordHash)
}

func TestUserGetMissing(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.Create(context.Background(), &domain.User{
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "salt:hash",
	})
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), &domain.User{
		FullName:     "Other Jane",
		Email:        "jane@example.com",
		PasswordHash: "other:hash",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}
