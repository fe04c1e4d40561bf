package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/platform/logger"
	"github.com/taskmgr/task-api/internal/store"
)

// TaskStore keeps tasks in a map keyed by ID. Callers always receive
// copies, so mutating a returned task never changes stored state.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]*domain.Task
	now    func() time.Time
	logger *slog.Logger
}

// TaskStoreOption configures a TaskStore.
type TaskStoreOption func(*TaskStore)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) TaskStoreOption {
	return func(s *TaskStore) { s.now = now }
}

// NewTaskStore returns an empty TaskStore. If logger is nil, a default
// logger will be used.
func NewTaskStore(logger *slog.Logger, opts ...TaskStoreOption) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TaskStore{
		tasks:  make(map[uuid.UUID]*domain.Task),
		now:    time.Now,
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ store.TaskStore = (*TaskStore)(nil)

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}

// Insert implements store.TaskStore.Insert.
func (s *TaskStore) Insert(ctx context.Context, ownerID uuid.UUID, in domain.NewTaskInput) (*domain.Task, error) {
	in = in.WithDefaults()
	now := s.now().UTC().Truncate(domain.TimestampPrecision)
	task := &domain.Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.tasks[task.ID] = cloneTask(task)
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("task inserted",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return task, nil
}

// FindByOwner implements store.TaskStore.FindByOwner. Tasks come back in
// creation order.
func (s *TaskStore) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	s.mu.RLock()
	tasks := make([]*domain.Task, 0)
	for _, t := range s.tasks {
		if t.OwnerID == ownerID {
			tasks = append(tasks, cloneTask(t))
		}
	}
	s.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID.String() < tasks[j].ID.String()
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// FindOne implements store.TaskStore.FindOne.
func (s *TaskStore) FindOne(_ context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.owned(taskID, ownerID)
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(
	ctx context.Context,
	taskID, ownerID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.owned(taskID, ownerID)
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	patch.Apply(t)
	t.Touch(s.now())

	logger.FromContextOrDefault(ctx, s.logger).Debug("task updated",
		slog.String("task_id", taskID.String()))
	return cloneTask(t), nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, taskID, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owned(taskID, ownerID); !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, taskID)

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted",
		slog.String("task_id", taskID.String()))
	return nil
}

// owned must be called with s.mu held.
func (s *TaskStore) owned(taskID, ownerID uuid.UUID) (*domain.Task, bool) {
	t, ok := s.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, false
	}
	return t, true
}
