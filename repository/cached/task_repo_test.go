package cached

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
)

type memRepo struct {
	mu        sync.Mutex
	seq       int
	tasks     map[string]domain.Task
	listCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{tasks: map[string]domain.Task{}}
}

func (r *memRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *task
	stored.ID = "task-" + string(rune('0'+r.seq))
	r.tasks[stored.ID] = stored
	return &stored, nil
}

func (r *memRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *memRepo) GetByTitle(_ context.Context, ownerID, title string) (*domain.Task, error) {
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

func (r *memRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var out []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memRepo) listCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

type memCache struct {
	mu        sync.Mutex
	snapshots map[string][]domain.Task
	sets      int
	deletes   int
}

func newMemCache() *memCache {
	return &memCache{snapshots: map[string][]domain.Task{}}
}

func (c *memCache) Get(_ context.Context, ownerID string) ([]domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tasks, ok := c.snapshots[ownerID]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return append([]domain.Task(nil), tasks...), nil
}

func (c *memCache) Set(_ context.Context, ownerID string, tasks []domain.Task, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.snapshots[ownerID] = append([]domain.Task(nil), tasks...)
	return nil
}

func (c *memCache) Delete(_ context.Context, ownerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	delete(c.snapshots, ownerID)
	return nil
}

func (c *memCache) has(ownerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.snapshots[ownerID]
	return ok
}

// brokenCache fails every operation.
type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Get(context.Context, string) ([]domain.Task, error) { return nil, errCacheDown }
func (brokenCache) Set(context.Context, string, []domain.Task, time.Duration) error {
	return errCacheDown
}
func (brokenCache) Delete(context.Context, string) error { return errCacheDown }

func newTask(t *testing.T, title, ownerID string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, "", time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC), 1, ownerID)
	require.NoError(t, err)
	return task
}

func TestListByOwner_MissRepopulatesThenHits(t *testing.T) {
	t.Parallel()

	durable := newMemRepo()
	cache := newMemCache()
	repo := NewTaskRepository(durable, cache, time.Minute, nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, newTask(t, "groceries", "owner-1"))
	require.NoError(t, err)

	first, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, durable.listCount())
	require.True(t, cache.has("owner-1"))

	// The second read is served from the snapshot.
	second, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, durable.listCount())
}

func TestWritesInvalidateSnapshot(t *testing.T) {
	t.Parallel()

	durable := newMemRepo()
	cache := newMemCache()
	repo := NewTaskRepository(durable, cache, time.Minute, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTask(t, "groceries", "owner-1"))
	require.NoError(t, err)

	_, err = repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.True(t, cache.has("owner-1"))

	created.Description = "weekly run"
	require.NoError(t, repo.Update(ctx, created))
	require.False(t, cache.has("owner-1"))

	tasks, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Equal(t, "weekly run", tasks[0].Description)
	require.True(t, cache.has("owner-1"))

	require.NoError(t, repo.Delete(ctx, created.ID))
	require.False(t, cache.has("owner-1"))

	tasks, err = repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestInvalidationScopedToOwner(t *testing.T) {
	t.Parallel()

	durable := newMemRepo()
	cache := newMemCache()
	repo := NewTaskRepository(durable, cache, time.Minute, nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, newTask(t, "alice task", "alice"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newTask(t, "bob task", "bob"))
	require.NoError(t, err)

	_, err = repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	_, err = repo.ListByOwner(ctx, "bob")
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTask(t, "alice second", "alice"))
	require.NoError(t, err)

	require.False(t, cache.has("alice"))
	require.True(t, cache.has("bob"))
}

func TestCacheFailuresDoNotFailOperations(t *testing.T) {
	t.Parallel()

	durable := newMemRepo()
	repo := NewTaskRepository(durable, brokenCache{}, time.Minute, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTask(t, "groceries", "owner-1"))
	require.NoError(t, err)

	tasks, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	created.Priority = 5
	require.NoError(t, repo.Update(ctx, created))
	require.NoError(t, repo.Delete(ctx, created.ID))
}

func TestDeleteMissingTask(t *testing.T) {
	t.Parallel()

	repo := NewTaskRepository(newMemRepo(), newMemCache(), time.Minute, nil)
	err := repo.Delete(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestPointLookupsBypassCache(t *testing.T) {
	t.Parallel()

	durable := newMemRepo()
	cache := newMemCache()
	repo := NewTaskRepository(durable, cache, time.Minute, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTask(t, "groceries", "owner-1"))
	require.NoError(t, err)

	// Plant a stale snapshot; point lookups must not see it.
	stale := *created
	stale.Title = "outdated"
	require.NoError(t, cache.Set(ctx, "owner-1", []domain.Task{stale}, time.Minute))

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "groceries", byID.Title)

	byTitle, err := repo.GetByTitle(ctx, "owner-1", "groceries")
	require.NoError(t, err)
	require.Equal(t, created.ID, byTitle.ID)
}
