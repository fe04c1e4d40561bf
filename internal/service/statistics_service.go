package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/platform/logger"
	"github.com/taskmgr/task-api/internal/redact"
)

// TaskLister is the read access the statistics engine needs.
type TaskLister interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
}

// StatisticsService aggregates an owner's tasks. Results are recomputed on
// every call.
type StatisticsService interface {
	Compute(ctx context.Context, ownerID uuid.UUID) (*domain.TaskStatistics, error)
}

type statisticsServiceImpl struct {
	tasks  TaskLister
	now    func() time.Time
	logger *slog.Logger
}

// NewStatisticsService creates a StatisticsService reading through tasks.
// now supplies the current instant; nil means time.Now. "Today" is the UTC
// calendar date of that instant.
func NewStatisticsService(tasks TaskLister, now func() time.Time, logger *slog.Logger) (StatisticsService, error) {
	if tasks == nil {
		return nil, nilDependency("tasks")
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &statisticsServiceImpl{
		tasks:  tasks,
		now:    now,
		logger: logger.With(slog.String("component", "statistics_service")),
	}, nil
}

// Compute implements StatisticsService.Compute
func (s *statisticsServiceImpl) Compute(ctx context.Context, ownerID uuid.UUID) (*domain.TaskStatistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.FindByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to load tasks for statistics",
			slog.String("error", redact.Error(err)),
			slog.String("owner_id", ownerID.String()))
		return nil, NewTaskServiceError("statistics", "failed to load tasks", err)
	}

	stats := domain.ComputeStatistics(tasks, domain.DateOf(s.now().UTC()))
	log.Debug("statistics computed",
		slog.String("owner_id", ownerID.String()),
		slog.Int("total", stats.Total),
		slog.Int("overdue", stats.OverdueCount))
	return &stats, nil
}
