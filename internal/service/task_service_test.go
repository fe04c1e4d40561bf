package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/mocks"
	"github.com/taskmgr/task-api/internal/platform/memory"
	"github.com/taskmgr/task-api/internal/service"
	"github.com/taskmgr/task-api/internal/store"
)

func TestNewTaskService(t *testing.T) {
	_, err := service.NewTaskService(nil, nil)
	assert.ErrorIs(t, err, service.ErrInvalidDependency)

	svc, err := service.NewTaskService(&mocks.MockTaskStore{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestTaskServiceCreate(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("defaults status and delegates", func(t *testing.T) {
		tasks := &mocks.MockTaskStore{}
		want := &domain.Task{ID: uuid.New(), OwnerID: ownerID, Title: "Nueva tarea", Status: domain.TaskStatusTodo}
		tasks.On("Insert", mock.Anything, ownerID, domain.NewTaskInput{
			Title:  "Nueva tarea",
			Status: domain.TaskStatusTodo,
		}).Return(want, nil).Once()

		svc, err := service.NewTaskService(tasks, nil)
		require.NoError(t, err)

		got, err := svc.Create(ctx, ownerID, domain.NewTaskInput{Title: "Nueva tarea"})
		require.NoError(t, err)
		assert.Same(t, want, got)
		tasks.AssertExpectations(t)
	})

	t.Run("validation errors never reach the store", func(t *testing.T) {
		tests := []struct {
			name  string
			input domain.NewTaskInput
			field string
		}{
			{"empty title", domain.NewTaskInput{Title: ""}, "title"},
			{"whitespace title", domain.NewTaskInput{Title: "   "}, "title"},
			{"unknown status", domain.NewTaskInput{Title: "x", Status: "blocked"}, "status"},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				tasks := &mocks.MockTaskStore{}
				svc, err := service.NewTaskService(tasks, nil)
				require.NoError(t, err)

				_, err = svc.Create(ctx, ownerID, tt.input)
				var vErr *domain.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.field, vErr.Field)
				tasks.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		tasks := &mocks.MockTaskStore{}
		cause := errors.New("disk full")
		tasks.On("Insert", mock.Anything, ownerID, mock.Anything).Return(nil, cause)

		svc, err := service.NewTaskService(tasks, nil)
		require.NoError(t, err)

		_, err = svc.Create(ctx, ownerID, domain.NewTaskInput{Title: "x"})
		var svcErr *service.TaskServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "create", svcErr.Operation)
		assert.ErrorIs(t, err, cause)
	})
}

func TestTaskServiceNotFoundPropagates(t *testing.T) {
	ctx := context.Background()
	taskID, ownerID := uuid.New(), uuid.New()
	status := domain.TaskStatusCompleted

	tasks := &mocks.MockTaskStore{}
	tasks.On("FindOne", mock.Anything, taskID, ownerID).Return(nil, store.ErrTaskNotFound)
	tasks.On("Update", mock.Anything, taskID, ownerID, mock.Anything).Return(nil, store.ErrTaskNotFound)
	tasks.On("Delete", mock.Anything, taskID, ownerID).Return(store.ErrTaskNotFound)

	svc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)

	_, err = svc.Get(ctx, taskID, ownerID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = svc.Update(ctx, taskID, ownerID, domain.TaskPatch{Status: &status})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, taskID, ownerID), store.ErrTaskNotFound)
	tasks.AssertExpectations(t)
}

func TestTaskServiceUpdateValidation(t *testing.T) {
	tasks := &mocks.MockTaskStore{}
	svc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)

	bad := domain.TaskStatus("archived")
	_, err = svc.Update(context.Background(), uuid.New(), uuid.New(), domain.TaskPatch{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)

	empty := " "
	_, err = svc.Update(context.Background(), uuid.New(), uuid.New(), domain.TaskPatch{Title: &empty})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestTaskServiceLifecycle runs the service against the in-memory store to
// check round-trips, open-ended transitions and ownership isolation.
func TestTaskServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, err := service.NewTaskService(memory.NewTaskStore(nil), nil)
	require.NoError(t, err)

	alice, bob := uuid.New(), uuid.New()
	due := domain.NewDate(2026, time.December, 24)

	created, err := svc.Create(ctx, alice, domain.NewTaskInput{
		Title:       "Nueva tarea",
		Description: "Descripción",
		DueDate:     &due,
	})
	require.NoError(t, err)

	listed, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "Nueva tarea", listed[0].Title)
	assert.Equal(t, "Descripción", listed[0].Description)
	assert.Equal(t, "2026-12-24", listed[0].DueDate.String())

	for _, next := range []domain.TaskStatus{
		domain.TaskStatusCompleted,
		domain.TaskStatusTodo,
		domain.TaskStatusInProgress,
		domain.TaskStatusCompleted,
		domain.TaskStatusInProgress,
	} {
		status := next
		updated, err := svc.Update(ctx, created.ID, alice, domain.TaskPatch{Status: &status})
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, next, updated.Status)
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
	}

	bobs, err := svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = svc.Get(ctx, created.ID, bob)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID, bob), store.ErrTaskNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID, alice))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID, alice), store.ErrTaskNotFound)
}
