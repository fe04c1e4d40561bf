package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/mocks"
	"github.com/taskmgr/task-api/internal/service"
	"github.com/taskmgr/task-api/internal/store"
)

func newUserService(t *testing.T, users *mocks.MockUserStore) service.UserService {
	t.Helper()
	svc, err := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil)
	require.NoError(t, err)
	return svc
}

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hashed, normalized user", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		user, err := newUserService(t, users).Register(ctx, " New@Example.com", "password123")
		require.NoError(t, err)

		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, "hashed:password123", user.HashedPassword)
		assert.Equal(t, user.ID, users.LastUserID)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := newUserService(t, mocks.NewMockUserStore())

		_, err := svc.Register(ctx, "not-an-email", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)

		_, err = svc.Register(ctx, "a@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := newUserService(t, mocks.NewMockUserStore())
		_, err := svc.Register(ctx, "dup@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "DUP@example.com", "password123")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("hash failure", func(t *testing.T) {
		svc, err := service.NewUserService(mocks.NewMockUserStore(), &mocks.MockPasswordHasher{Err: errors.New("boom")}, nil)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "a@example.com", "password123")
		assert.ErrorContains(t, err, "boom")
	})
}

func TestUserServiceEnsureUser(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	svc := newUserService(t, users)

	first, created, err := svc.EnsureUser(ctx, "admin@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.EnsureUser(ctx, "admin@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.Users, 1)

	failing := mocks.NewMockUserStore()
	failing.GetByEmailError = errors.New("timeout")
	_, _, err = newUserService(t, failing).EnsureUser(ctx, "admin@example.com", "password123")
	assert.ErrorContains(t, err, "timeout")
}

func TestNewUserServiceValidatesDependencies(t *testing.T) {
	_, err := service.NewUserService(nil, &mocks.MockPasswordHasher{}, nil)
	assert.ErrorIs(t, err, service.ErrInvalidDependency)
	_, err = service.NewUserService(mocks.NewMockUserStore(), nil, nil)
	assert.ErrorIs(t, err, service.ErrInvalidDependency)
}
