package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("nil_pending_tasks_normalized_to_empty", func(t *testing.T) {
		user, err := NewUser("Ann", "ann@example.com", nil)
		require.NoError(t, err)

		assert.NotNil(t, user.PendingTasks)
		assert.Empty(t, user.PendingTasks)
	})

	t.Run("initial_pending_tasks_kept_as_given", func(t *testing.T) {
		user, err := NewUser("Ann", "ann@example.com", []string{"t1", "t2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"t1", "t2"}, user.PendingTasks)
	})

	t.Run("empty_name_fails", func(t *testing.T) {
		_, err := NewUser("", "ann@example.com", nil)
		assert.ErrorIs(t, err, ErrEmptyUserName)
	})

	t.Run("empty_email_fails", func(t *testing.T) {
		_, err := NewUser("Ann", "", nil)
		assert.ErrorIs(t, err, ErrEmptyEmail)
	})
}
