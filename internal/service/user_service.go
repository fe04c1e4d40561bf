package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/platform/logger"
	"github.com/taskmgr/task-api/internal/redact"
	"github.com/taskmgr/task-api/internal/service/auth"
	"github.com/taskmgr/task-api/internal/store"
)

// UserService manages accounts.
type UserService interface {
	// Register validates the credentials, hashes the password and stores a
	// new user. Returns an error matching store.ErrEmailExists when the email
	// is taken.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// EnsureUser registers the user unless the email already exists. The
	// boolean reports whether a user was created.
	EnsureUser(ctx context.Context, email, password string) (*domain.User, bool, error)
}

type userServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, nilDependency("users")
	}
	if hasher == nil {
		return nil, nilDependency("hasher")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := domain.NewUser(email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration rejected: email exists")
		} else {
			log.Error("failed to save user", slog.String("error", redact.Error(err)))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// EnsureUser implements UserService.EnsureUser
func (s *userServiceImpl) EnsureUser(ctx context.Context, email, password string) (*domain.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, store.ErrUserNotFound):
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user, err := s.Register(ctx, email, password)
	if errors.Is(err, store.ErrEmailExists) {
		// Created concurrently between the lookup and the insert.
		existing, err = s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, false, fmt.Errorf("failed to look up user: %w", err)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
