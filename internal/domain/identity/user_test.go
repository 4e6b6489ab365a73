package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(tenantID, "Alice", "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.CheckPassword("s3cret-pass"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser(tenantID, "ab", "", "s3cret-pass")
		assert.Error(t, err)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		_, err := NewUser(tenantID, "alice", "", "short")
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser(tenantID, "alice", "not-an-email", "s3cret-pass")
		assert.Error(t, err)
	})

	t.Run("requires tenant", func(t *testing.T) {
		_, err := NewUser(uuid.Nil, "alice", "", "s3cret-pass")
		assert.Error(t, err)
	})
}

func TestUserLockout(t *testing.T) {
	user, err := NewUser(uuid.New(), "alice", "", "s3cret-pass")
	require.NoError(t, err)

	t.Run("locks after repeated failures", func(t *testing.T) {
		for range 5 {
			user.RecordFailedAttempt()
		}
		assert.Equal(t, UserStatusLocked, user.Status)
		assert.False(t, user.CanLogin())
	})

	t.Run("unlock resets the counter", func(t *testing.T) {
		user.Unlock()
		assert.Equal(t, 0, user.FailedAttempts)
		assert.True(t, user.CanLogin())
	})

	t.Run("successful login clears failures", func(t *testing.T) {
		user.RecordFailedAttempt()
		now := time.Now()
		user.RecordLogin(now)
		assert.Equal(t, 0, user.FailedAttempts)
		require.NotNil(t, user.LastLoginAt)
		assert.WithinDuration(t, now, *user.LastLoginAt, time.Second)
	})

	t.Run("deactivated users cannot login", func(t *testing.T) {
		user.Deactivate()
		assert.False(t, user.CanLogin())
	})
}

func TestChangePassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "alice", "", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("new-s3cret-pass"))
	assert.True(t, user.CheckPassword("new-s3cret-pass"))
	assert.False(t, user.CheckPassword("s3cret-pass"))
	assert.Error(t, user.ChangePassword("short"))
}
