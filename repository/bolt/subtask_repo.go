// Package bolt stores subtasks in an embedded BoltDB file, one nested bucket
// per parent task. Tasks own their subtasks, so dropping a task's bucket
// removes the whole collection in a single transaction.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
)

const subtasksBucket = "subtasks"

type SubtaskRepository struct {
	db *bolt.DB
}

// Open initializes the BoltDB file and ensures the root bucket exists.
func Open(path string) (*SubtaskRepository, error) {
	if path == "" {
		return nil, errors.New("bolt: subtask store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: opening subtask store: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(subtasksBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SubtaskRepository{db: db}, nil
}

func (r *SubtaskRepository) Create(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error) {
	if subtask == nil || subtask.TaskID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if subtask.ID == "" {
		subtask.ID = uuid.NewString()
	}

	payload, err := json.Marshal(subtask)
	if err != nil {
		return nil, err
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		taskBucket, err := tx.Bucket([]byte(subtasksBucket)).CreateBucketIfNotExists([]byte(subtask.TaskID))
		if err != nil {
			return err
		}
		return taskBucket.Put([]byte(subtask.ID), payload)
	})
	if err != nil {
		return nil, err
	}
	return subtask, nil
}

func (r *SubtaskRepository) Delete(ctx context.Context, taskID, id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		taskBucket := tx.Bucket([]byte(subtasksBucket)).Bucket([]byte(taskID))
		if taskBucket == nil || taskBucket.Get([]byte(id)) == nil {
			return domain.ErrSubtaskNotFound
		}
		return taskBucket.Delete([]byte(id))
	})
}

func (r *SubtaskRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Subtask, error) {
	var subtasks []domain.Subtask
	err := r.db.View(func(tx *bolt.Tx) error {
		taskBucket := tx.Bucket([]byte(subtasksBucket)).Bucket([]byte(taskID))
		if taskBucket == nil {
			return nil
		}
		return taskBucket.ForEach(func(k, v []byte) error {
			var subtask domain.Subtask
			if err := json.Unmarshal(v, &subtask); err != nil {
				return err
			}
			subtasks = append(subtasks, subtask)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return subtasks, nil
}

func (r *SubtaskRepository) DeleteByTask(ctx context.Context, taskID string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(subtasksBucket))
		if root.Bucket([]byte(taskID)) == nil {
			return nil
		}
		return root.DeleteBucket([]byte(taskID))
	})
}

// Ping verifies the store is usable; the health monitor probes it.
func (r *SubtaskRepository) Ping() error {
	if r == nil || r.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return r.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(subtasksBucket)) == nil {
			return errors.New("bolt: subtasks bucket missing")
		}
		return nil
	})
}

// Close closes the Bolt database.
func (r *SubtaskRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

var _ repository.SubtaskRepository = (*SubtaskRepository)(nil)
