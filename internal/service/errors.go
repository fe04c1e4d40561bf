package service

import (
	"errors"
	"fmt"
)

// Error handling principles:
//  1. Input problems surface as *domain.ValidationError, returned unwrapped.
//  2. Repository failures are wrapped in a service error type that unwraps,
//     so errors.Is(err, store.ErrTaskNotFound) still holds for callers.
//  3. The API layer maps errors to HTTP status codes in one place.
var (
	// ErrInvalidDependency is returned by constructors given a nil dependency.
	ErrInvalidDependency = errors.New("invalid dependency")
)

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func nilDependency(name string) error {
	return fmt.Errorf("%w: %s cannot be nil", ErrInvalidDependency, name)
}
