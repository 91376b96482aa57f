package repository

import (
	"context"

	"github.com/tasktracker/backend/domain"
)

// TaskFilter narrows List results. Empty fields place no constraint; when
// both are set they apply conjunctively.
type TaskFilter struct {
	Status   domain.Status
	Priority domain.Priority
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TaskItem, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.TaskItem, error)
	Create(ctx context.Context, task *domain.TaskItem) (*domain.TaskItem, error)
	Update(ctx context.Context, task *domain.TaskItem) (*domain.TaskItem, error)
}
