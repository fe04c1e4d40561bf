package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/platform/logger"
	"github.com/taskmgr/task-api/internal/redact"
	"github.com/taskmgr/task-api/internal/store"
)

// TaskService is the task lifecycle use case. Every method takes the
// authenticated owner and never touches another owner's tasks.
type TaskService interface {
	// Create validates input and stores a new task. The status defaults to
	// todo when input.Status is empty.
	Create(ctx context.Context, ownerID uuid.UUID, input domain.NewTaskInput) (*domain.Task, error)

	// List returns every task of the owner; an empty slice when there are none.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Get returns one owned task or an error matching store.ErrTaskNotFound.
	Get(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error)

	// Update validates the supplied fields and applies them. Any status may
	// follow any other, including reopening a completed task.
	Update(ctx context.Context, taskID, ownerID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes an owned task.
	Delete(ctx context.Context, taskID, ownerID uuid.UUID) error
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService backed by tasks.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, nilDependency("tasks")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input domain.NewTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := input.Validate(); err != nil {
		log.Debug("rejected task input", slog.String("error", err.Error()))
		return nil, err
	}

	task, err := s.tasks.Insert(ctx, ownerID, input.WithDefaults())
	if err != nil {
		log.Error("failed to insert task",
			slog.String("error", redact.Error(err)),
			slog.String("owner_id", ownerID.String()))
		return nil, NewTaskServiceError("create", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", ownerID.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.tasks.FindByOwner(ctx, ownerID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", redact.Error(err)),
			slog.String("owner_id", ownerID.String()))
		return nil, NewTaskServiceError("list", "failed to load tasks", err)
	}
	return tasks, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.FindOne(ctx, taskID, ownerID)
	if err != nil {
		s.logStoreError(ctx, "get", taskID, err)
		return nil, NewTaskServiceError("get", "failed to load task", err)
	}
	return task, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(
	ctx context.Context,
	taskID, ownerID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Debug("rejected task patch",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	task, err := s.tasks.Update(ctx, taskID, ownerID, patch)
	if err != nil {
		s.logStoreError(ctx, "update", taskID, err)
		return nil, NewTaskServiceError("update", "failed to update task", err)
	}

	log.Info("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, taskID, ownerID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, taskID, ownerID); err != nil {
		s.logStoreError(ctx, "delete", taskID, err)
		return NewTaskServiceError("delete", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.String("task_id", taskID.String()))
	return nil
}

// logStoreError logs a miss at debug level and anything else as an error.
func (s *taskServiceImpl) logStoreError(ctx context.Context, op string, taskID uuid.UUID, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if errors.Is(err, store.ErrTaskNotFound) {
		log.Debug("task not found",
			slog.String("operation", op),
			slog.String("task_id", taskID.String()))
		return
	}
	log.Error("task store failure",
		slog.String("operation", op),
		slog.String("task_id", taskID.String()),
		slog.String("error", redact.Error(err)))
}
