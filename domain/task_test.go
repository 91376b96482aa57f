package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		current  Status
		target   Status
		wantCode ErrorCode
	}{
		{name: "pending to in progress", current: StatusPending, target: StatusInProgress},
		{name: "in progress to completed", current: StatusInProgress, target: StatusCompleted},
		{name: "pending to completed skips a step", current: StatusPending, target: StatusCompleted, wantCode: ErrCodeInvalid},
		{name: "in progress back to pending", current: StatusInProgress, target: StatusPending, wantCode: ErrCodeInvalid},
		{name: "pending self transition", current: StatusPending, target: StatusPending, wantCode: ErrCodeInvalid},
		{name: "in progress self transition", current: StatusInProgress, target: StatusInProgress, wantCode: ErrCodeInvalid},
		{name: "completed to pending", current: StatusCompleted, target: StatusPending, wantCode: ErrCodeConflict},
		{name: "completed to in progress", current: StatusCompleted, target: StatusInProgress, wantCode: ErrCodeConflict},
		{name: "completed self transition", current: StatusCompleted, target: StatusCompleted, wantCode: ErrCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &TaskItem{Status: tt.current}
			err := task.Transition(tt.target)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.target, task.Status)
				return
			}

			require.Error(t, err)
			assert.True(t, IsDomainError(err, tt.wantCode))
			assert.Equal(t, tt.current, task.Status)
		})
	}
}

func TestTransitionCompletedMessage(t *testing.T) {
	task := &TaskItem{Status: StatusCompleted}

	err := task.Transition(StatusInProgress)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Completed tasks cannot be updated.")
}

func TestTransitionInvalidMessageNamesBothStatuses(t *testing.T) {
	task := &TaskItem{Status: StatusPending}

	err := task.Transition(StatusCompleted)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "from 'Pending' to 'Completed'")
	assert.Contains(t, err.Error(), "Pending -> InProgress -> Completed")
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "InProgress", "Completed"} {
		status, ok := ParseStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, Status(valid), status)
	}

	for _, invalid := range []string{"", "pending", "Done", "IN_PROGRESS"} {
		_, ok := ParseStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestParsePriority(t *testing.T) {
	for _, valid := range []string{"Low", "Medium", "High"} {
		priority, ok := ParsePriority(valid)
		assert.True(t, ok)
		assert.Equal(t, Priority(valid), priority)
	}

	for _, invalid := range []string{"", "low", "Urgent", "0"} {
		_, ok := ParsePriority(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestPriorityWeightOrdering(t *testing.T) {
	assert.Greater(t, PriorityHigh.Weight(), PriorityMedium.Weight())
	assert.Greater(t, PriorityMedium.Weight(), PriorityLow.Weight())
}
