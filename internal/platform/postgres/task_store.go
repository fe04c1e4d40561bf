package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/platform/logger"
	"github.com/taskmgr/task-api/internal/redact"
	"github.com/taskmgr/task-api/internal/store"
)

const taskColumns = `id, owner_id, title, description, status, due_date, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// db may be a *sql.DB or a *sql.Tx. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    time.Now,
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task   domain.Task
		status string
		due    sql.NullTime
	)
	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&status,
		&due,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	if due.Valid {
		d := domain.DateOf(due.Time)
		task.DueDate = &d
	}
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}

// dueDateArg converts an optional date into a driver value.
func dueDateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

// Insert implements store.TaskStore.Insert.
func (s *PostgresTaskStore) Insert(
	ctx context.Context,
	ownerID uuid.UUID,
	in domain.NewTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

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

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		string(task.Status),
		dueDateArg(task.DueDate),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("error", redact.Error(err)),
			slog.String("owner_id", ownerID.String()))
		return nil, store.NewStoreError("task", "insert", "database error", MapError(err))
	}

	log.Debug("task inserted",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return task, nil
}

// FindByOwner implements store.TaskStore.FindByOwner.
func (s *PostgresTaskStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", redact.Error(err)),
			slog.String("owner_id", ownerID.String()))
		return nil, store.NewStoreError("task", "find_by_owner", "database error", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("task", "find_by_owner", "scan error", MapError(err))
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate task rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "find_by_owner", "database error", MapError(err))
	}
	return tasks, nil
}

// FindOne implements store.TaskStore.FindOne.
func (s *PostgresTaskStore) FindOne(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner_id = $2`
	return s.findOne(ctx, s.db, "find_one", query, taskID, ownerID)
}

func (s *PostgresTaskStore) findOne(
	ctx context.Context,
	db store.DBTX,
	operation, query string,
	taskID, ownerID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(db.QueryRowContext(ctx, query, taskID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", taskID.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to load task",
			slog.String("operation", operation),
			slog.String("error", redact.Error(err)),
			slog.String("task_id", taskID.String()))
		return nil, store.NewStoreError("task", operation, "database error", MapError(err))
	}
	return task, nil
}

// Update implements store.TaskStore.Update. The row is locked while the
// patch is applied so concurrent updates serialize; the last one wins.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	taskID, ownerID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	var updated *domain.Task
	err := s.inTx(ctx, func(ctx context.Context, db store.DBTX) error {
		query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner_id = $2 FOR UPDATE`
		task, err := s.findOne(ctx, db, "update", query, taskID, ownerID)
		if err != nil {
			return err
		}

		patch.Apply(task)
		task.Touch(s.now())

		result, err := db.ExecContext(ctx, `
			UPDATE tasks
			SET title = $3, description = $4, status = $5, due_date = $6, updated_at = $7
			WHERE id = $1 AND owner_id = $2
		`,
			task.ID,
			task.OwnerID,
			task.Title,
			task.Description,
			string(task.Status),
			dueDateArg(task.DueDate),
			task.UpdatedAt,
		)
		if err != nil {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
				slog.String("error", redact.Error(err)),
				slog.String("task_id", taskID.String()))
			return store.NewStoreError("task", "update", "database error", MapError(err))
		}
		if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.TaskStore.Delete.
func (s *PostgresTaskStore) Delete(ctx context.Context, taskID, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, taskID, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", taskID.String()))
		return store.NewStoreError("task", "delete", "database error", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for delete", slog.String("task_id", taskID.String()))
		return err
	}

	log.Debug("task deleted", slog.String("task_id", taskID.String()))
	return nil
}

// inTx runs fn in a new transaction when the store holds a *sql.DB, or on
// the caller's transaction when it already holds a *sql.Tx.
func (s *PostgresTaskStore) inTx(ctx context.Context, fn func(context.Context, store.DBTX) error) error {
	beginner, ok := s.db.(store.TxBeginner)
	if !ok {
		return fn(ctx, s.db)
	}
	return store.RunInTransaction(ctx, beginner, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, tx)
	})
}
