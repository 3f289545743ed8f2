package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
)

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed calendar event repository.
func NewEventRepository(pool *pgxpool.Pool) repository.EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, domain.ErrInvalidPayload
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO events (id, title, description, event_date, location, registered_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.RegisteredAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDateTaken
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE events
	SET title = $2, description = $3, event_date = $4, location = $5
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDateTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM events WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) Get(ctx context.Context, title string, date time.Time) (*domain.Event, error) {
	const query = `
	SELECT id, title, description, event_date, location, registered_at
	FROM events
	WHERE title = $1 AND event_date = $2
	`
	return scanEvent(r.pool.QueryRow(ctx, query, title, date))
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `
	SELECT id, title, description, event_date, location, registered_at
	FROM events
	ORDER BY event_date
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Event, error) {
	const query = `
	SELECT id, title, description, event_date, location, registered_at
	FROM events
	WHERE event_date = $1
	ORDER BY title
	`
	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) ListByMonth(ctx context.Context, year int, month time.Month) ([]domain.Event, error) {
	const query = `
	SELECT id, title, description, event_date, location, registered_at
	FROM events
	WHERE EXTRACT(YEAR FROM event_date) = $1 AND EXTRACT(MONTH FROM event_date) = $2
	ORDER BY event_date
	`
	rows, err := r.pool.Query(ctx, query, year, int(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.RegisteredAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}
