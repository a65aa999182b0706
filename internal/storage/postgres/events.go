package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/pkg/e"
)

type Events struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewEvents(pool *pgxpool.Pool, logger *slog.Logger) *Events {
	return &Events{pool: pool, logger: logger}
}

// Create persists the event and assigns its id. The id and timestamp on
// the passed record are overwritten with what the store committed.
func (r *Events) Create(ctx context.Context, event *domain.Event) error {
	const op = "postgres.Events.Create"

	if event == nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if event.Title == "" {
		return fmt.Errorf("%s: %w", op, e.ErrEmptyTitle)
	}
	if event.Latitude < -90 || event.Latitude > 90 || event.Longitude < -180 || event.Longitude > 180 {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if event.RadiusM <= 0 {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidRadius)
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	const query = `
INSERT INTO events (id, title, description, latitude, longitude, created_at, radius_m)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Latitude,
		event.Longitude,
		event.Timestamp,
		event.RadiusM,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (r *Events) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	const op = "postgres.Events.Get"

	const query = `
SELECT id, title, description, latitude, longitude, created_at, radius_m
FROM events
WHERE id = $1
`

	var ev domain.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&ev.Latitude,
		&ev.Longitude,
		&ev.Timestamp,
		&ev.RadiusM,
	)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	return &ev, nil
}

func (r *Events) List(ctx context.Context, page, limit int) ([]domain.Event, int64, error) {
	const op = "postgres.Events.List"

	if page < 1 || limit < 1 {
		return nil, 0, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}

	const query = `
SELECT id, title, description, latitude, longitude, created_at, radius_m
FROM events
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}

	return events, total, nil
}

// ListRecent returns events created at or after since, in creation order.
// The watcher feeds these snapshots to the proximity filter, which relies
// on the supplied order being stable.
func (r *Events) ListRecent(ctx context.Context, since time.Time) ([]domain.Event, error) {
	const op = "postgres.Events.ListRecent"

	const query = `
SELECT id, title, description, latitude, longitude, created_at, radius_m
FROM events
WHERE created_at >= $1
ORDER BY created_at ASC
`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	return events, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows rowScanner) ([]domain.Event, error) {
	events := make([]domain.Event, 0, 8)
	for rows.Next() {
		var ev domain.Event
		if err := rows.Scan(
			&ev.ID,
			&ev.Title,
			&ev.Description,
			&ev.Latitude,
			&ev.Longitude,
			&ev.Timestamp,
			&ev.RadiusM,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
