package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/josephcavalcante/projeto-todolist/domain"
)

func sampleTasks() []domain.Task {
	day := func(d int) time.Time {
		return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
	}
	return []domain.Task{
		{Title: "taxes", Deadline: day(5), Priority: 1},
		{Title: "report", Deadline: day(20), Priority: 5},
		{Title: "dentist", Deadline: day(5), Priority: 0},
		{Title: "backup", Deadline: day(12), Priority: 3},
	}
}

func titles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestFilterByDeadline(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.September, 5, 15, 30, 0, 0, time.UTC)
	got := FilterByDeadline(date)(sampleTasks())
	require.Equal(t, []string{"taxes", "dentist"}, titles(got))

	got = FilterByDeadline(time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC))(sampleTasks())
	require.Empty(t, got)
}

func TestFilterCritical(t *testing.T) {
	t.Parallel()

	// On the 10th: taxes and dentist are past due, backup's window opened
	// on the 9th, report's opens on the 15th.
	reference := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	got := FilterCritical(reference)(sampleTasks())
	require.Equal(t, []string{"taxes", "dentist", "backup"}, titles(got))
}

func TestSortByDeadline(t *testing.T) {
	t.Parallel()

	got := SortByDeadline()(sampleTasks())
	require.Equal(t, []string{"taxes", "dentist", "backup", "report"}, titles(got))
}

func TestSortByPriority(t *testing.T) {
	t.Parallel()

	got := SortByPriority()(sampleTasks())
	require.Equal(t, []string{"report", "backup", "taxes", "dentist"}, titles(got))
}

func TestStrategiesDoNotMutateInput(t *testing.T) {
	t.Parallel()

	input := sampleTasks()
	want := titles(input)

	SortByDeadline()(input)
	SortByPriority()(input)
	FilterCritical(time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC))(input)

	require.Equal(t, want, titles(input))
}

func TestStrategiesCompose(t *testing.T) {
	t.Parallel()

	reference := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	critical := FilterCritical(reference)(sampleTasks())
	got := SortByDeadline()(critical)
	require.Equal(t, []string{"taxes", "dentist", "backup"}, titles(got))
}
