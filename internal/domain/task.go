package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a Task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every valid status.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted}

// IsValid reports whether s is one of the enumerated statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts s to a TaskStatus, rejecting unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", statusError()
	}
	return status, nil
}

func statusError() *ValidationError {
	names := make([]string, len(TaskStatuses))
	for i, s := range TaskStatuses {
		names[i] = string(s)
	}
	return NewValidationError("status",
		"must be one of "+strings.Join(names, ", "),
		ErrInvalidTaskStatus)
}

// TimestampPrecision is the resolution task timestamps are stored at;
// Postgres timestamptz keeps microseconds.
const TimestampPrecision = time.Microsecond

// Touch sets UpdatedAt for a mutation happening at now. The new value is
// always strictly later than the previous one, even when the clock has not
// advanced or has moved backwards.
func (t *Task) Touch(now time.Time) {
	now = now.UTC().Truncate(TimestampPrecision)
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(TimestampPrecision)
	}
	t.UpdatedAt = now
}

// Task is a personal work item owned by exactly one user.
//
// There is no transition graph between statuses: any status may follow any
// other, and completed tasks can be reopened.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *Date      `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsOverdue reports whether the task has a due date before today and is
// not completed.
func (t *Task) IsOverdue(today Date) bool {
	return t.DueDate != nil &&
		t.DueDate.Before(today) &&
		t.Status != TaskStatusCompleted
}

// NewTaskInput holds the caller-supplied fields of a task being created.
// An empty Status means todo.
type NewTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	DueDate     *Date
}

// Validate checks the title and, when supplied, the status.
func (in NewTaskInput) Validate() error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.IsValid() {
		return statusError()
	}
	return nil
}

// WithDefaults returns a copy with the default status applied.
func (in NewTaskInput) WithDefaults() NewTaskInput {
	if in.Status == "" {
		in.Status = TaskStatusTodo
	}
	return in
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	DueDate     *Date
}

// Validate checks the supplied fields only.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.IsValid() {
		return statusError()
	}
	return nil
}

// Apply copies the supplied fields onto t. It does not touch timestamps.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	return nil
}
