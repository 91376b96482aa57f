package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"

	"github.com/google/uuid"
	bboltlib "go.etcd.io/bbolt"

	"github.com/tasktracker/backend/domain"
	"github.com/tasktracker/backend/repository"
)

type taskRepository struct {
	store *Store
}

// NewTaskRepository returns a Bolt-backed implementation of TaskRepository.
// Tasks are keyed by a monotonic sequence so listings iterate in creation
// order; a secondary bucket maps task ids onto sequence keys.
func NewTaskRepository(store *Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.TaskItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var task *domain.TaskItem
	err := r.store.db.View(func(tx *bboltlib.Tx) error {
		seqKey := tx.Bucket(bucketTaskIndex).Get([]byte(id))
		if seqKey == nil {
			return domain.ErrTaskNotFound
		}
		payload := tx.Bucket(bucketTasks).Get(seqKey)
		if payload == nil {
			return domain.ErrTaskNotFound
		}
		task = &domain.TaskItem{}
		return json.Unmarshal(payload, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.TaskItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tasks []domain.TaskItem
	err := r.store.db.View(func(tx *bboltlib.Tx) error {
		c := tx.Bucket(bucketTasks).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var task domain.TaskItem
			if err := json.Unmarshal(v, &task); err != nil {
				continue
			}
			if filter.Status != "" && task.Status != filter.Status {
				continue
			}
			if filter.Priority != "" && task.Priority != filter.Priority {
				continue
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	return tasks, err
}

func (r *taskRepository) Create(ctx context.Context, task *domain.TaskItem) (*domain.TaskItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	err := r.store.db.Update(func(tx *bboltlib.Tx) error {
		tasksBucket := tx.Bucket(bucketTasks)
		seq, err := tasksBucket.NextSequence()
		if err != nil {
			return err
		}
		seqKey := make([]byte, 8)
		binary.BigEndian.PutUint64(seqKey, seq)

		payload, err := json.Marshal(task)
		if err != nil {
			return err
		}
		if err := tasksBucket.Put(seqKey, payload); err != nil {
			return err
		}
		return tx.Bucket(bucketTaskIndex).Put([]byte(task.ID), seqKey)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.TaskItem) (*domain.TaskItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	err := r.store.db.Update(func(tx *bboltlib.Tx) error {
		seqKey := tx.Bucket(bucketTaskIndex).Get([]byte(task.ID))
		if seqKey == nil {
			return domain.ErrTaskNotFound
		}
		payload, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketTasks).Put(seqKey, payload)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}
