package domain

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a task item.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// Priority orders tasks by urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParseStatus maps a wire value onto a Status.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(value), true
	}
	return "", false
}

// ParsePriority maps a wire value onto a Priority.
func ParsePriority(value string) (Priority, bool) {
	switch Priority(value) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(value), true
	}
	return "", false
}

// Weight returns the sort rank of a priority, higher is more urgent.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// TaskItem represents a tracked unit of work.
type TaskItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t *TaskItem) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// Transition applies the status state machine to the task.
// Completed is terminal: the conflict check runs before the transition table
// so Completed->Completed reports a conflict rather than a bad request.
func (t *TaskItem) Transition(target Status) error {
	if t.Status == StatusCompleted {
		return NewError(ErrCodeConflict, "Completed tasks cannot be updated.")
	}
	if !allowedTransition(t.Status, target) {
		return NewError(ErrCodeInvalid, fmt.Sprintf(
			"Invalid status transition from '%s' to '%s'. Allowed transitions: Pending -> InProgress -> Completed.",
			t.Status, target,
		))
	}
	t.Status = target
	return nil
}

func allowedTransition(current, target Status) bool {
	switch {
	case current == StatusPending && target == StatusInProgress:
		return true
	case current == StatusInProgress && target == StatusCompleted:
		return true
	}
	return false
}
