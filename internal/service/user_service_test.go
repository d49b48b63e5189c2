package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forestguard/internal/repository"
	"forestguard/internal/repository/jsonfile"
)

func newTestUserService(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	repo := jsonfile.NewUserRepository(filepath.Join(t.TempDir(), "users.json"), nil)
	require.NoError(t, repo.Init(context.Background()))
	return NewUserService(repo), repo
}

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("register then authenticate", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		user, err := svc.Register(ctx, "alice", "alice@example.com", "sup3rsecret")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Empty(t, user.PasswordHash, "hash must not leave the service")

		got, err := svc.Authenticate(ctx, "alice", "sup3rsecret")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("duplicate username does not mutate the store", func(t *testing.T) {
		svc, repo := newTestUserService(t)

		_, err := svc.Register(ctx, "alice", "alice@example.com", "sup3rsecret")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "other@example.com", "different")
		require.ErrorIs(t, err, ErrUserAlreadyExists)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "alice@example.com", users[0].Email)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		_, err := svc.Register(ctx, "", "a@b.c", "sup3rsecret")
		require.Error(t, err)
		_, err = svc.Register(ctx, "alice", "", "sup3rsecret")
		require.Error(t, err)
		_, err = svc.Register(ctx, "alice", "a@b.c", "")
		require.Error(t, err)
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		_, err := svc.Register(ctx, "alice", "alice@example.com", "sup3rsecret")
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "alice", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		_, err := svc.Authenticate(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		_, err := svc.Authenticate(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
