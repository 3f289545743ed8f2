package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
)

type taskCache struct {
	client *redislib.Client
	prefix string
}

// NewTaskCache creates a Redis-backed snapshot cache for per-owner task
// lists. Keys are namespaced by owner id; values are JSON-serialized lists.
func NewTaskCache(client *redislib.Client) repository.TaskCache {
	return &taskCache{
		client: client,
		prefix: "tasks:",
	}
}

func (c *taskCache) Get(ctx context.Context, ownerID string) ([]domain.Task, error) {
	payload, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if err == redislib.Nil {
			return nil, repository.ErrCacheMiss
		}
		return nil, err
	}

	var tasks []domain.Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		// A corrupt snapshot is indistinguishable from a cold cache for the
		// caller: report a miss so the durable store repopulates it.
		return nil, repository.ErrCacheMiss
	}
	return tasks, nil
}

func (c *taskCache) Set(ctx context.Context, ownerID string, tasks []domain.Task, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(ownerID), payload, ttl).Err()
}

func (c *taskCache) Delete(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, c.key(ownerID)).Err()
}

func (c *taskCache) key(ownerID string) string {
	return fmt.Sprintf("%s%s", c.prefix, ownerID)
}
