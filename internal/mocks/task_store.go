package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/store"
)

// MockTaskStore is a testify mock of store.TaskStore. Set expectations with
// On and check them with AssertExpectations.
type MockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Insert is a mock implementation of store.TaskStore.Insert
func (m *MockTaskStore) Insert(
	ctx context.Context,
	ownerID uuid.UUID,
	in domain.NewTaskInput,
) (*domain.Task, error) {
	args := m.Called(ctx, ownerID, in)
	return taskArg(args, 0), args.Error(1)
}

// FindByOwner is a mock implementation of store.TaskStore.FindByOwner
func (m *MockTaskStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

// FindOne is a mock implementation of store.TaskStore.FindOne
func (m *MockTaskStore) FindOne(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, taskID, ownerID)
	return taskArg(args, 0), args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *MockTaskStore) Update(
	ctx context.Context,
	taskID, ownerID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	args := m.Called(ctx, taskID, ownerID, patch)
	return taskArg(args, 0), args.Error(1)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, taskID, ownerID uuid.UUID) error {
	args := m.Called(ctx, taskID, ownerID)
	return args.Error(0)
}

func taskArg(args mock.Arguments, i int) *domain.Task {
	task, _ := args.Get(i).(*domain.Task)
	return task
}
