package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, owner_id, title, description, registered_at, deadline, priority, percent)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.pool.Exec(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.RegisteredAt,
		task.Deadline,
		task.Priority,
		task.Percent,
	); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		deadline = $4,
		priority = $5,
		percent = $6
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Deadline,
		task.Priority,
		task.Percent,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT id, owner_id, title, description, registered_at, deadline, priority, percent
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) GetByTitle(ctx context.Context, ownerID, title string) (*domain.Task, error) {
	const query = `
	SELECT id, owner_id, title, description, registered_at, deadline, priority, percent
	FROM tasks
	WHERE owner_id = $1 AND title = $2
	ORDER BY registered_at
	LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, ownerID, title)
	return scanTask(row)
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	const query = `
	SELECT id, owner_id, title, description, registered_at, deadline, priority, percent
	FROM tasks
	WHERE owner_id = $1
	ORDER BY registered_at, title
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.RegisteredAt,
		&task.Deadline,
		&task.Priority,
		&task.Percent,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}
