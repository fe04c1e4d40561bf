package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskmgr/task-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the bearer token for the Authorization header
	Token string `json:"token"`

	UserID uuid.UUID `json:"user_id"`

	// ExpiresAt is when the token stops being accepted (RFC 3339, UTC)
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateTaskRequest defines the payload for POST /tasks. Status defaults to
// todo; due_date is "YYYY-MM-DD".
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
}

// ToInput converts the request into the domain input. Status and due date
// are parsed here; the title is validated by the task service.
func (req CreateTaskRequest) ToInput() (domain.NewTaskInput, error) {
	input := domain.NewTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			return domain.NewTaskInput{}, err
		}
		input.Status = status
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.NewTaskInput{}, err
	}
	input.DueDate = dueDate
	return input, nil
}

// UpdateTaskRequest defines the payload for PUT and PATCH /tasks/{id}.
// Absent or null fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
}

// ToPatch converts the request into a domain patch.
func (req UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Status = &status
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.TaskPatch{}, err
	}
	patch.DueDate = dueDate
	return patch, nil
}

func parseDueDate(raw *string) (*domain.Date, error) {
	if raw == nil {
		return nil, nil
	}
	date, err := domain.ParseDate(*raw)
	if err != nil {
		return nil, domain.NewValidationError("due_date",
			"must be a date in YYYY-MM-DD format", domain.ErrInvalidDate)
	}
	return &date, nil
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
