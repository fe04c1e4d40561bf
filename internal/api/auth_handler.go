package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/taskmgr/task-api/internal/api/shared"
	"github.com/taskmgr/task-api/internal/platform/logger"
	"github.com/taskmgr/task-api/internal/service"
	"github.com/taskmgr/task-api/internal/service/auth"
)

// Authenticator is the part of the login flow the handlers need.
// *auth.Authenticator implements it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
	IssueToken(ctx context.Context, userID uuid.UUID) (*auth.LoginResult, error)
}

var _ Authenticator = (*auth.Authenticator)(nil)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator Authenticator
	users         service.UserService
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	authenticator Authenticator,
	users service.UserService,
	logger *slog.Logger,
) *AuthHandler {
	if authenticator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("authenticator cannot be nil for AuthHandler")
	}
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users cannot be nil for AuthHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		authenticator: authenticator,
		users:         users,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register. It creates the account and logs
// the new user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	result, err := h.authenticator.IssueToken(r.Context(), user.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, newAuthResponse(result))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	result, err := h.authenticator.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newAuthResponse(result))
}

func newAuthResponse(result *auth.LoginResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		UserID:    result.UserID,
		ExpiresAt: result.ExpiresAt,
	}
}
