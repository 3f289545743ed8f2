package domain

import "strings"

// Subtask is a unit of work owned by exactly one task. Subtask percentages
// drive the parent task's effective completion percentage.
type Subtask struct {
	ID          string  `json:"id"`
	TaskID      string  `json:"task_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Percent     float64 `json:"percent"`
}

// NewSubtask builds a validated subtask for the given parent task.
func NewSubtask(taskID, title, description string, percent float64) (*Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrBlankTitle
	}
	if taskID == "" {
		return nil, ErrInvalidPayload
	}
	return &Subtask{
		TaskID:      taskID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Percent:     ClampPercent(percent),
	}, nil
}
