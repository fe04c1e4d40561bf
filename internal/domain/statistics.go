package domain

// TaskStatistics is the per-owner aggregate over the current task set.
// The three status counts always sum to Total.
type TaskStatistics struct {
	Total           int `json:"total"`
	TodoCount       int `json:"todo_count"`
	InProgressCount int `json:"in_progress_count"`
	CompletedCount  int `json:"completed_count"`
	OverdueCount    int `json:"overdue_count"`
}

// ComputeStatistics counts tasks by status and counts those overdue as of
// today. It is a pure function of its inputs.
func ComputeStatistics(tasks []*Task, today Date) TaskStatistics {
	var stats TaskStatistics
	for _, t := range tasks {
		stats.Total++
		switch t.Status {
		case TaskStatusTodo:
			stats.TodoCount++
		case TaskStatusInProgress:
			stats.InProgressCount++
		case TaskStatusCompleted:
			stats.CompletedCount++
		}
		if t.IsOverdue(today) {
			stats.OverdueCount++
		}
	}
	return stats
}
