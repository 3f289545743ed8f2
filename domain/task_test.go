package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTask_Validation(t *testing.T) {
	t.Parallel()

	deadline := date(2026, time.September, 10)

	task, err := NewTask("  pay rent  ", " before noon ", deadline, 3, "owner-1")
	require.NoError(t, err)
	require.Equal(t, "pay rent", task.Title)
	require.Equal(t, "before noon", task.Description)
	require.Equal(t, "owner-1", task.OwnerID)
	require.Equal(t, 3, task.Priority)
	require.Zero(t, task.Percent)
	require.False(t, task.RegisteredAt.IsZero())

	_, err = NewTask("   ", "", deadline, 1, "owner-1")
	require.ErrorIs(t, err, ErrBlankTitle)

	_, err = NewTask("ok", "", time.Time{}, 1, "owner-1")
	require.ErrorIs(t, err, ErrMissingDeadline)

	_, err = NewTask("ok", "", deadline, 1, "")
	require.ErrorIs(t, err, ErrMissingOwner)

	task, err = NewTask("ok", "", deadline, -5, "owner-1")
	require.NoError(t, err)
	require.Zero(t, task.Priority)
}

func TestTask_IsCritical(t *testing.T) {
	t.Parallel()

	task := &Task{
		Title:    "report",
		Deadline: date(2026, time.September, 10),
		Priority: 3,
	}

	// Window opens on deadline minus priority days.
	require.False(t, task.IsCritical(date(2026, time.September, 6)))
	require.True(t, task.IsCritical(date(2026, time.September, 7)))
	require.True(t, task.IsCritical(date(2026, time.September, 10)))
	require.True(t, task.IsCritical(date(2026, time.September, 25)))
}

func TestTask_IsCritical_TimeOfDayIgnored(t *testing.T) {
	t.Parallel()

	task := &Task{
		Deadline: time.Date(2026, time.September, 10, 23, 59, 0, 0, time.UTC),
		Priority: 0,
	}

	morning := time.Date(2026, time.September, 10, 0, 1, 0, 0, time.UTC)
	require.True(t, task.IsCritical(morning))
	require.False(t, task.IsCritical(date(2026, time.September, 9)))
}

func TestTask_IsCritical_ZeroPriority(t *testing.T) {
	t.Parallel()

	task := &Task{Deadline: date(2026, time.September, 10)}
	require.False(t, task.IsCritical(date(2026, time.September, 9)))
	require.True(t, task.IsCritical(date(2026, time.September, 10)))
}

func TestTask_Percentage(t *testing.T) {
	t.Parallel()

	task := &Task{Percent: 40}
	require.Equal(t, 40.0, task.Percentage())

	task.Subtasks = []Subtask{
		{Title: "a", Percent: 100},
		{Title: "b", Percent: 50},
		{Title: "c", Percent: 0},
	}
	require.Equal(t, 50.0, task.Percentage())

	// A single subtask overrides the stored value entirely.
	task.Subtasks = []Subtask{{Title: "a", Percent: 10}}
	require.Equal(t, 10.0, task.Percentage())
}

func TestClampPercent(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.0, ClampPercent(-3))
	require.Equal(t, 100.0, ClampPercent(250))
	require.Equal(t, 72.5, ClampPercent(72.5))
}

func TestNewSubtask_Validation(t *testing.T) {
	t.Parallel()

	sub, err := NewSubtask("task-1", " step one ", "detail", 130)
	require.NoError(t, err)
	require.Equal(t, "step one", sub.Title)
	require.Equal(t, "task-1", sub.TaskID)
	require.Equal(t, 100.0, sub.Percent)

	_, err = NewSubtask("task-1", "  ", "", 0)
	require.ErrorIs(t, err, ErrBlankTitle)
}
