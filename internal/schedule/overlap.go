package schedule

import (
	"time"

	"github.com/trainhub/scheduler-api/internal/models"
)

// Covers reports whether the task's inclusive [start_date, end_date] span
// contains the given calendar date. Comparison is by calendar date, never by
// instant. Tasks without a usable end date are treated as covering nothing.
func Covers(task models.Task, date time.Time) bool {
	if task.StartDate.IsZero() || task.EndDate.IsZero() {
		return false
	}
	d := Day(date)
	return !d.Before(Day(task.StartDate)) && !d.After(Day(task.EndDate))
}

// TasksOnDate returns the subset of tasks whose date range covers the given
// date. The filter is stable: result ordering preserves input ordering.
func TasksOnDate(date time.Time, tasks []models.Task) []models.Task {
	var covered []models.Task
	for _, task := range tasks {
		if Covers(task, date) {
			covered = append(covered, task)
		}
	}
	return covered
}
