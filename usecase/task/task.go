package task

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tasktracker/backend/domain"
	"github.com/tasktracker/backend/internal/validate"
	"github.com/tasktracker/backend/repository"
)

// CreateRequest deliberately has no status field: tasks always start out
// Pending and any status value present in the payload is discarded.
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusCommand pairs a task id with its requested status for dispatch.
type UpdateStatusCommand struct {
	ID      string
	Request UpdateStatusRequest
}

// ListFilter carries the optional status/priority constraints of a task
// listing, still as raw wire values.
type ListFilter struct {
	Status   string
	Priority string
}

// Response is the external projection of a task item. Status and priority
// serialize as their symbolic names.
type Response struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// Create stores a new task. Status is forced to Pending and priority
// defaults to Medium when the request leaves it out.
func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority, _ = domain.ParsePriority(req.Priority)
	}

	item := &domain.TaskItem{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.StatusPending,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := uc.tasks.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("task created", zap.String("task_id", created.ID))
	return project(created), nil
}

// UpdateStatus drives the task through its state machine and persists the
// result.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Response, error) {
	if err := validateUpdateStatus(req); err != nil {
		return nil, err
	}
	target, _ := domain.ParseStatus(req.Status)

	item, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.NewNotFound("TaskItem", id)
		}
		return nil, err
	}

	if err := item.Transition(target); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	return project(updated), nil
}

// List returns tasks matching the filter, ordered by priority descending.
// The sort is stable so equal priorities keep the repository's order.
func (uc *UseCase) List(ctx context.Context, filter ListFilter) ([]Response, error) {
	repoFilter := repository.TaskFilter{}
	if filter.Status != "" {
		status, ok := domain.ParseStatus(filter.Status)
		if !ok {
			return nil, domain.NewError(domain.ErrCodeInvalid, "Invalid status value.")
		}
		repoFilter.Status = status
	}
	if filter.Priority != "" {
		priority, ok := domain.ParsePriority(filter.Priority)
		if !ok {
			return nil, domain.NewError(domain.ErrCodeInvalid, "Invalid priority value.")
		}
		repoFilter.Priority = priority
	}

	items, err := uc.tasks.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.Weight() > items[j].Priority.Weight()
	})

	responses := make([]Response, 0, len(items))
	for i := range items {
		responses = append(responses, *project(&items[i]))
	}
	return responses, nil
}

// GetByID loads a single task, promoting absence to a not-found failure.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*Response, error) {
	item, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.NewNotFound("TaskItem", id)
		}
		return nil, err
	}
	return project(item), nil
}

func project(item *domain.TaskItem) *Response {
	return &Response{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		Priority:    string(item.Priority),
		CreatedAt:   item.CreatedAt,
	}
}

func validateCreate(req CreateRequest) error {
	errs := validate.NewErrors()
	validate.Required(errs, "Title", req.Title, "Title is required.")
	validate.MaxLen(errs, "Title", req.Title, 50, "Title cannot exceed 50 characters.")
	if req.Priority != "" {
		if _, ok := domain.ParsePriority(req.Priority); !ok {
			errs.Add("Priority", "Invalid priority value.")
		}
	}
	return errs.Err()
}

func validateUpdateStatus(req UpdateStatusRequest) error {
	errs := validate.NewErrors()
	if _, ok := domain.ParseStatus(req.Status); !ok {
		errs.Add("Status", "Invalid status value.")
	}
	return errs.Err()
}
