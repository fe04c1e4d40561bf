package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmgr/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every operation
// is scoped to an owner: a task belonging to another user behaves exactly
// like a task that does not exist.
type TaskStore interface {
	// Insert creates a task for ownerID and returns it with a fresh ID and
	// CreatedAt == UpdatedAt. The input is assumed to be validated.
	Insert(ctx context.Context, ownerID uuid.UUID, in domain.NewTaskInput) (*domain.Task, error)

	// FindByOwner returns all tasks of ownerID in unspecified order.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// FindOne returns the task with taskID if ownerID owns it.
	// Returns ErrTaskNotFound otherwise.
	FindOne(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error)

	// Update applies patch to the owned task and advances UpdatedAt with
	// domain.Task.Touch, so it always ends up strictly later than before.
	// An empty patch still bumps UpdatedAt. Returns ErrTaskNotFound when no owned task matches.
	Update(ctx context.Context, taskID, ownerID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes the owned task. Returns ErrTaskNotFound when no owned
	// task matches.
	Delete(ctx context.Context, taskID, ownerID uuid.UUID) error
}
