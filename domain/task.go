package domain

import (
	"strings"
	"time"
)

// Task represents a user-owned activity item with a deadline.
type Task struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	Deadline     time.Time `json:"deadline"`
	Priority     int       `json:"priority"`
	Percent      float64   `json:"percent"`
	Subtasks     []Subtask `json:"subtasks,omitempty"`
}

// NewTask builds a validated task attributed to the given owner.
// The registration date is set to now and the completion percentage to zero.
func NewTask(title, description string, deadline time.Time, priority int, ownerID string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrBlankTitle
	}
	if deadline.IsZero() {
		return nil, ErrMissingDeadline
	}
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	if priority < 0 {
		priority = 0
	}
	return &Task{
		OwnerID:      ownerID,
		Title:        title,
		Description:  strings.TrimSpace(description),
		RegisteredAt: time.Now(),
		Deadline:     deadline,
		Priority:     priority,
	}, nil
}

// IsCritical reports whether the reference date falls on or after the start
// of the task's criticality window (deadline minus priority days).
func (t *Task) IsCritical(reference time.Time) bool {
	if t == nil || t.Deadline.IsZero() {
		return false
	}
	threshold := dateOf(t.Deadline).AddDate(0, 0, -t.Priority)
	return !dateOf(reference).Before(threshold)
}

// Percentage returns the effective completion percentage: the mean of the
// subtask percentages when at least one subtask exists, the stored value
// otherwise.
func (t *Task) Percentage() float64 {
	if t == nil {
		return 0
	}
	if len(t.Subtasks) == 0 {
		return t.Percent
	}
	var sum float64
	for _, sub := range t.Subtasks {
		sum += sub.Percent
	}
	return sum / float64(len(t.Subtasks))
}

func dateOf(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

// ClampPercent bounds a completion percentage to the 0-100 range.
func ClampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
