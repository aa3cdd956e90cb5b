package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	deadline := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)

	t.Run("applies_defaults", func(t *testing.T) {
		task, err := NewTask("Write report", "", deadline)
		require.NoError(t, err)

		assert.Equal(t, "Write report", task.Name)
		assert.False(t, task.Completed)
		assert.Equal(t, "", task.AssignedUser)
		assert.Equal(t, UnassignedUserName, task.AssignedUserName)
		assert.False(t, task.DateCreated.IsZero())
		assert.False(t, task.Assigned())
	})

	t.Run("empty_name_fails", func(t *testing.T) {
		_, err := NewTask("", "", deadline)
		assert.ErrorIs(t, err, ErrEmptyTaskName)
	})

	t.Run("zero_deadline_fails", func(t *testing.T) {
		_, err := NewTask("Write report", "", time.Time{})
		assert.ErrorIs(t, err, ErrZeroDeadline)
	})
}
