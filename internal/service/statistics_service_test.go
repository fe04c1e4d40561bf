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
)

func TestStatisticsServiceCompute(t *testing.T) {
	ctx := context.Background()
	// 23:30 on Oct 16 in UTC-5 is already Oct 17 in UTC.
	now := time.Date(2026, 10, 16, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))

	tasks := memory.NewTaskStore(nil)
	taskSvc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)
	stats, err := service.NewStatisticsService(tasks, func() time.Time { return now }, nil)
	require.NoError(t, err)

	owner := uuid.New()
	oct16 := domain.NewDate(2026, time.October, 16)
	oct17 := domain.NewDate(2026, time.October, 17)

	inputs := []domain.NewTaskInput{
		{Title: "due yesterday in UTC", DueDate: &oct16},
		{Title: "due today in UTC", DueDate: &oct17},
		{Title: "no due date", Status: domain.TaskStatusInProgress},
		{Title: "done late", Status: domain.TaskStatusCompleted, DueDate: &oct16},
	}
	for _, in := range inputs {
		_, err := taskSvc.Create(ctx, owner, in)
		require.NoError(t, err)
	}

	got, err := stats.Compute(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, &domain.TaskStatistics{
		Total:           4,
		TodoCount:       2,
		InProgressCount: 1,
		CompletedCount:  1,
		OverdueCount:    1,
	}, got)

	empty, err := stats.Compute(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, &domain.TaskStatistics{}, empty)
}

func TestStatisticsServiceReflectsLatestState(t *testing.T) {
	ctx := context.Background()
	tasks := memory.NewTaskStore(nil)
	taskSvc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)
	stats, err := service.NewStatisticsService(tasks, nil, nil)
	require.NoError(t, err)

	owner := uuid.New()
	created, err := taskSvc.Create(ctx, owner, domain.NewTaskInput{Title: "Nueva tarea"})
	require.NoError(t, err)

	before, err := stats.Compute(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, before.TodoCount)

	status := domain.TaskStatusInProgress
	_, err = taskSvc.Update(ctx, created.ID, owner, domain.TaskPatch{Status: &status})
	require.NoError(t, err)

	after, err := stats.Compute(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 0, after.TodoCount)
	assert.Equal(t, 1, after.InProgressCount)
	assert.Equal(t, after.Total, after.TodoCount+after.InProgressCount+after.CompletedCount)
}

func TestStatisticsServiceStoreFailure(t *testing.T) {
	tasks := &mocks.MockTaskStore{}
	cause := errors.New("connection refused")
	tasks.On("FindByOwner", mock.Anything, mock.Anything).Return(nil, cause)

	stats, err := service.NewStatisticsService(tasks, nil, nil)
	require.NoError(t, err)

	_, err = stats.Compute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, cause)

	_, err = service.NewStatisticsService(nil, nil, nil)
	assert.ErrorIs(t, err, service.ErrInvalidDependency)
}
