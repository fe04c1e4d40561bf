package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskmgr/task-api/internal/platform/logger"
	"github.com/taskmgr/task-api/internal/redact"
	"github.com/taskmgr/task-api/internal/store"
)

// dummyPassword is hashed once at construction; unknown emails are compared
// against that hash so a miss costs as much as a wrong password.
const dummyPassword = "task-api-login-timing-equalizer"

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Authenticator verifies email and password credentials and issues tokens.
type Authenticator struct {
	users     store.UserStore
	verifier  PasswordVerifier
	jwt       JWTService
	dummyHash string
	now       func() time.Time
	logger    *slog.Logger
}

// AuthenticatorOption configures an Authenticator.
type AuthenticatorOption func(*Authenticator)

// WithAuthenticatorClock sets the clock used to report token expiry. It
// should be the clock the JWTService signs with.
func WithAuthenticatorClock(now func() time.Time) AuthenticatorOption {
	return func(a *Authenticator) {
		a.now = now
	}
}

// NewAuthenticator wires the login flow. hasher produces the dummy hash and
// should use the same cost as stored passwords.
func NewAuthenticator(
	users store.UserStore,
	verifier PasswordVerifier,
	hasher PasswordHasher,
	jwtService JWTService,
	logger *slog.Logger,
	opts ...AuthenticatorOption,
) (*Authenticator, error) {
	switch {
	case users == nil:
		return nil, errors.New("users cannot be nil")
	case verifier == nil:
		return nil, errors.New("verifier cannot be nil")
	case hasher == nil:
		return nil, errors.New("hasher cannot be nil")
	case jwtService == nil:
		return nil, errors.New("jwtService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	a := &Authenticator{
		users:     users,
		verifier:  verifier,
		jwt:       jwtService,
		dummyHash: dummyHash,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "authenticator")),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Login checks the credentials and issues a token. It returns
// ErrInvalidCredentials for an unknown email or a wrong password.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to look up user for login", slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = a.verifier.Compare(a.dummyHash, password)
		log.Debug("login rejected: unknown email")
		return nil, ErrInvalidCredentials
	}

	if err := a.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login rejected: password mismatch", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return a.IssueToken(ctx, user.ID)
}

// IssueToken creates a token for a user whose identity is already
// established, such as one that has just registered.
func (a *Authenticator) IssueToken(ctx context.Context, userID uuid.UUID) (*LoginResult, error) {
	issuedAt := a.now()
	token, err := a.jwt.GenerateToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.FromContextOrDefault(ctx, a.logger).Info("token issued",
		slog.String("user_id", userID.String()))
	// exp claims carry whole seconds; truncating keeps the reported expiry
	// from running past the one in the token.
	return &LoginResult{
		Token:     token,
		UserID:    userID,
		ExpiresAt: issuedAt.Add(a.jwt.TokenLifetime()).Truncate(time.Second).UTC(),
	}, nil
}
