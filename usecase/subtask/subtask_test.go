package subtask

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/usecase"
)

type stubFinder struct {
	tasks map[string]*domain.Task // keyed by ownerID + "/" + title
}

func (f *stubFinder) FindByTitle(_ context.Context, title, ownerID string) (*domain.Task, error) {
	task, ok := f.tasks[ownerID+"/"+title]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
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
	stored.ID = "sub-" + string(rune('0'+r.seq))
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

func newTestService() (*Service, *memSubtaskRepo, *recordingNotifier) {
	finder := &stubFinder{tasks: map[string]*domain.Task{
		"owner-1/groceries": {ID: "task-1", OwnerID: "owner-1", Title: "groceries"},
	}}
	repo := newMemSubtaskRepo()
	notifier := &recordingNotifier{}
	return New(repo, finder, notifier, nil), repo, notifier
}

func TestService_AddAndList(t *testing.T) {
	t.Parallel()

	svc, _, notifier := newTestService()
	ctx := context.Background()

	require.True(t, svc.Add(ctx, "groceries", "milk", "half gallon", 0, "owner-1"))
	require.True(t, svc.Add(ctx, "groceries", "bread", "", 50, "owner-1"))

	subs := svc.List(ctx, "groceries", "owner-1")
	require.Len(t, subs, 2)
	require.Equal(t, "task-1", subs[0].TaskID)

	// Each addition notifies a parent update.
	require.Equal(t, []usecase.EventKind{usecase.TaskUpdated, usecase.TaskUpdated}, notifier.kinds)
}

func TestService_AddValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	require.False(t, svc.Add(ctx, "groceries", "  ", "", 0, "owner-1"))
	require.False(t, svc.Add(ctx, "no-such-task", "milk", "", 0, "owner-1"))
	require.False(t, svc.Add(ctx, "groceries", "milk", "", 0, "other-owner"))
}

func TestService_Remove(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	require.True(t, svc.Add(ctx, "groceries", "milk", "", 0, "owner-1"))
	require.True(t, svc.Remove(ctx, "groceries", "milk", "owner-1"))
	require.False(t, svc.Remove(ctx, "groceries", "milk", "owner-1"))
	require.Empty(t, svc.List(ctx, "groceries", "owner-1"))
}
