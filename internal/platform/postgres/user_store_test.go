package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/store"
)

func newUserStoreMock(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresUserStore(db, nil), mock
}

func TestPostgresUserStoreCreate(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO users")

	t.Run("success", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		user, err := domain.NewUser("Someone@Example.com", "$2a$10$hash")
		require.NoError(t, err)

		mock.ExpectExec(insert).
			WithArgs(user.ID.String(), "someone@example.com", "$2a$10$hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		user, err := domain.NewUser("taken@example.com", "$2a$10$hash")
		require.NoError(t, err)

		mock.ExpectExec(insert).WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid user never reaches the database", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		user := &domain.User{Email: "not-an-email"}

		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver failure", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		user, err := domain.NewUser("a@example.com", "$2a$10$hash")
		require.NoError(t, err)

		mock.ExpectExec(insert).WillReturnError(errors.New("connection reset"))

		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrInternal)
		var storeErr *store.StoreError
		assert.True(t, errors.As(err, &storeErr))
	})
}

func TestPostgresUserStoreGetByEmail(t *testing.T) {
	query := regexp.QuoteMeta("FROM users WHERE LOWER(email) = $1")
	columns := []string{"id", "email", "hashed_password", "created_at", "updated_at"}

	t.Run("found with case-insensitive lookup", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		id := "6d9a4f43-5a8e-4a57-9b8c-6c2b0d6e1f10"
		now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

		mock.ExpectQuery(query).
			WithArgs("admin@example.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id, "admin@example.com", "$2a$10$hash", now, now))

		user, err := s.GetByEmail(context.Background(), "ADMIN@example.com ")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID.String())
		assert.Equal(t, "$2a$10$hash", user.HashedPassword)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		mock.ExpectQuery(query).WillReturnError(sql.ErrNoRows)

		user, err := s.GetByEmail(context.Background(), "ghost@example.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("query failure", func(t *testing.T) {
		s, mock := newUserStoreMock(t)
		mock.ExpectQuery(query).WillReturnError(errors.New("timeout"))

		_, err := s.GetByEmail(context.Background(), "a@example.com")
		assert.ErrorIs(t, err, store.ErrInternal)
		assert.False(t, errors.Is(err, store.ErrUserNotFound))
	})
}

func TestNewPostgresUserStorePanicsWithoutDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
}
