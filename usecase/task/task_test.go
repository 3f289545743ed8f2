package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/usecase"
)

type memTaskRepo struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[string]domain.Task{}}
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *task
	stored.ID = "task-" + string(rune('a'+r.seq-1))
	r.tasks[stored.ID] = stored
	return &stored, nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *memTaskRepo) GetByTitle(_ context.Context, ownerID, title string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, task := range r.tasks {
		if task.OwnerID == ownerID && task.Title == title {
			found := task
			return &found, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *memTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

type memSubtaskRepo struct {
	mu   sync.Mutex
	seq  int
	subs map[string][]domain.Subtask
}

func newMemSubtaskRepo() *memSubtaskRepo {
	return &memSubtaskRepo{subs: map[string][]domain.Subtask{}}
}

func (r *memSubtaskRepo) Create(_ context.Context, subtask *domain.Subtask) (*domain.Subtask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *subtask
	stored.ID = "sub-" + string(rune('a'+r.seq-1))
	r.subs[stored.TaskID] = append(r.subs[stored.TaskID], stored)
	return &stored, nil
}

func (r *memSubtaskRepo) Delete(_ context.Context, taskID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.subs[taskID]
	for i, sub := range list {
		if sub.ID == id {
			r.subs[taskID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrSubtaskNotFound
}

func (r *memSubtaskRepo) ListByTask(_ context.Context, taskID string) ([]domain.Subtask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Subtask(nil), r.subs[taskID]...), nil
}

func (r *memSubtaskRepo) DeleteByTask(_ context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, taskID)
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []usecase.EventKind
}

func (n *recordingNotifier) Publish(notification usecase.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, notification.Kind)
}

func (n *recordingNotifier) published() []usecase.EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]usecase.EventKind(nil), n.kinds...)
}

func newTestService(t *testing.T) (*Service, *memTaskRepo, *memSubtaskRepo, *recordingNotifier) {
	t.Helper()
	tasks := newMemTaskRepo()
	subtasks := newMemSubtaskRepo()
	notifier := &recordingNotifier{}
	return New(tasks, subtasks, nil, notifier, nil), tasks, subtasks, notifier
}

func deadline() time.Time {
	return time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
}

func TestService_CreateThenList(t *testing.T) {
	t.Parallel()

	svc, _, _, notifier := newTestService(t)
	ctx := context.Background()

	require.True(t, svc.Create(ctx, "groceries", "weekly run", deadline(), 2, "owner-1"))

	tasks := svc.List(ctx, "owner-1")
	require.Len(t, tasks, 1)
	require.Equal(t, "groceries", tasks[0].Title)
	require.Equal(t, []usecase.EventKind{usecase.TaskCreated}, notifier.published())
}

func TestService_CreateBlankTitle(t *testing.T) {
	t.Parallel()

	svc, _, _, notifier := newTestService(t)
	ctx := context.Background()

	require.True(t, svc.Create(ctx, "groceries", "", deadline(), 1, "owner-1"))
	require.False(t, svc.Create(ctx, "   ", "", deadline(), 1, "owner-1"))

	// The rejected create leaves the list untouched and stays silent.
	require.Len(t, svc.List(ctx, "owner-1"), 1)
	require.Equal(t, []usecase.EventKind{usecase.TaskCreated}, notifier.published())
}

func TestService_EditRenames(t *testing.T) {
	t.Parallel()

	svc, _, _, notifier := newTestService(t)
	ctx := context.Background()

	require.True(t, svc.Create(ctx, "groceries", "", deadline(), 1, "owner-1"))

	original, err := svc.FindByTitle(ctx, "groceries", "owner-1")
	require.NoError(t, err)

	newDeadline := deadline().AddDate(0, 0, 7)
	require.True(t, svc.Edit(ctx, "groceries", "shopping", "moved", newDeadline, 4, 30, "owner-1"))

	_, err = svc.FindByTitle(ctx, "groceries", "owner-1")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	renamed, err := svc.FindByTitle(ctx, "shopping", "owner-1")
	require.NoError(t, err)
	require.Equal(t, original.ID, renamed.ID)
	require.Equal(t, original.RegisteredAt, renamed.RegisteredAt)
	require.Equal(t, newDeadline, renamed.Deadline)
	require.Equal(t, 4, renamed.Priority)
	require.Equal(t, 30.0, renamed.Percent)
	require.Equal(t, []usecase.EventKind{usecase.TaskCreated, usecase.TaskUpdated}, notifier.published())
}

func TestService_EditMissingTask(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	require.False(t, svc.Edit(context.Background(), "ghost", "renamed", "", deadline(), 1, 0, "owner-1"))
}

func TestService_DeleteTwice(t *testing.T) {
	t.Parallel()

	svc, _, _, notifier := newTestService(t)
	ctx := context.Background()

	require.True(t, svc.Create(ctx, "groceries", "", deadline(), 1, "owner-1"))
	require.True(t, svc.Delete(ctx, "groceries", "owner-1"))
	require.False(t, svc.Delete(ctx, "groceries", "owner-1"))
	require.Empty(t, svc.List(ctx, "owner-1"))
	require.Equal(t, []usecase.EventKind{usecase.TaskCreated, usecase.TaskDeleted}, notifier.published())
}

func TestService_DeleteRemovesSubtasks(t *testing.T) {
	t.Parallel()

	svc, _, subtasks, _ := newTestService(t)
	ctx := context.Background()

	require.True(t, svc.Create(ctx, "groceries", "", deadline(), 1, "owner-1"))
	task, err := svc.FindByTitle(ctx, "groceries", "owner-1")
	require.NoError(t, err)

	sub, err := domain.NewSubtask(task.ID, "milk", "", 0)
	require.NoError(t, err)
	_, err = subtasks.Create(ctx, sub)
	require.NoError(t, err)

	require.True(t, svc.Delete(ctx, "groceries", "owner-1"))
	left, err := subtasks.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, left)
}

func TestService_OwnerIsolation(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	require.True(t, svc.Create(ctx, "secret plan", "", deadline(), 1, "alice"))

	// Another owner's lookup behaves exactly like a missing task.
	_, err := svc.FindByTitle(ctx, "secret plan", "bob")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.Empty(t, svc.List(ctx, "bob"))
	require.False(t, svc.Delete(ctx, "secret plan", "bob"))
	require.False(t, svc.Edit(ctx, "secret plan", "stolen", "", deadline(), 1, 0, "bob"))

	// The task is still there for its owner.
	require.Len(t, svc.List(ctx, "alice"), 1)
}

func TestService_DerivedPercentage(t *testing.T) {
	t.Parallel()

	svc, _, subtasks, _ := newTestService(t)
	ctx := context.Background()

	require.True(t, svc.Create(ctx, "release", "", deadline(), 1, "owner-1"))
	task, err := svc.FindByTitle(ctx, "release", "owner-1")
	require.NoError(t, err)
	require.Zero(t, task.Percent)

	for _, p := range []float64{100, 0} {
		sub, err := domain.NewSubtask(task.ID, "step", "", p)
		require.NoError(t, err)
		_, err = subtasks.Create(ctx, sub)
		require.NoError(t, err)
	}

	task, err = svc.FindByTitle(ctx, "release", "owner-1")
	require.NoError(t, err)
	require.Equal(t, 50.0, task.Percent)

	listed := svc.List(ctx, "owner-1")
	require.Len(t, listed, 1)
	require.Equal(t, 50.0, listed[0].Percent)
}
