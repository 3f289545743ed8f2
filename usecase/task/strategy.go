package task

import (
	"sort"
	"time"

	"github.com/josephcavalcante/projeto-todolist/domain"
)

// FilterStrategy selects a subset of tasks, preserving input order.
// SortStrategy returns a permutation of its input. Both leave the input
// slice untouched, so strategies compose by plain sequential application.
type (
	FilterStrategy func([]domain.Task) []domain.Task
	SortStrategy   func([]domain.Task) []domain.Task
)

// FilterByDeadline keeps tasks whose deadline falls on the given date.
func FilterByDeadline(date time.Time) FilterStrategy {
	y, m, d := date.Date()
	return func(tasks []domain.Task) []domain.Task {
		var out []domain.Task
		for _, t := range tasks {
			ty, tm, td := t.Deadline.Date()
			if ty == y && tm == m && td == d {
				out = append(out, t)
			}
		}
		return out
	}
}

// FilterCritical keeps tasks inside their criticality window as of the
// reference date.
func FilterCritical(reference time.Time) FilterStrategy {
	return func(tasks []domain.Task) []domain.Task {
		var out []domain.Task
		for _, t := range tasks {
			if t.IsCritical(reference) {
				out = append(out, t)
			}
		}
		return out
	}
}

// SortByDeadline orders tasks by deadline, earliest first.
func SortByDeadline() SortStrategy {
	return func(tasks []domain.Task) []domain.Task {
		out := make([]domain.Task, len(tasks))
		copy(out, tasks)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Deadline.Before(out[j].Deadline)
		})
		return out
	}
}

// SortByPriority orders tasks by priority, highest first.
func SortByPriority() SortStrategy {
	return func(tasks []domain.Task) []domain.Task {
		out := make([]domain.Task, len(tasks))
		copy(out, tasks)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority > out[j].Priority
		})
		return out
	}
}
