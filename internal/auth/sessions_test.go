package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions(t *testing.T) {
	t.Run("issue and validate", func(t *testing.T) {
		sessions := NewSessions("test-secret", time.Hour)

		token, err := sessions.Issue("alice")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		username, err := sessions.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := NewSessions("secret-a", time.Hour).Issue("alice")
		require.NoError(t, err)

		_, err = NewSessions("secret-b", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		sessions := NewSessions("test-secret", time.Millisecond)

		token, err := sessions.Issue("alice")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = sessions.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		sessions := NewSessions("test-secret", time.Hour)
		_, err := sessions.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("zero ttl falls back to a day", func(t *testing.T) {
		sessions := NewSessions("test-secret", 0)
		assert.Equal(t, 24*time.Hour, sessions.TTL())
	})
}
