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

type Stats struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStats(pool *pgxpool.Pool, logger *slog.Logger) *Stats {
	return &Stats{pool: pool, logger: logger}
}

func (s *Stats) SavePositionUpdate(ctx context.Context, upd *domain.PositionUpdate) error {
	const op = "postgres.Stats.SavePositionUpdate"

	if upd == nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if upd.UserID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}
	if upd.Latitude < -90 || upd.Latitude > 90 || upd.Longitude < -180 || upd.Longitude > 180 {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	if upd.ID == uuid.Nil {
		upd.ID = uuid.New()
	}
	if upd.CheckedAt.IsZero() {
		upd.CheckedAt = time.Now().UTC()
	}
	// A nil slice would encode as SQL NULL and violate the NOT NULL
	// constraint on event_ids.
	if upd.EventIDs == nil {
		upd.EventIDs = []uuid.UUID{}
	}

	const query = `
INSERT INTO position_updates (id, user_id, latitude, longitude, event_ids, checked_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

	_, err := s.pool.Exec(ctx, query,
		upd.ID,
		upd.UserID,
		upd.Latitude,
		upd.Longitude,
		upd.EventIDs,
		upd.CheckedAt,
	)
	if err != nil {
		s.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("user_id", upd.UserID.String()),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (s *Stats) CountUniqueUsers(ctx context.Context, minutes int) (int64, error) {
	const op = "postgres.Stats.CountUniqueUsers"

	if minutes < 1 {
		return 0, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
SELECT count(DISTINCT user_id)
FROM position_updates
WHERE checked_at >= now() - make_interval(mins => $1)
`

	var count int64
	if err := s.pool.QueryRow(ctx, query, minutes).Scan(&count); err != nil {
		s.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	return count, nil
}

func (s *Stats) CountEvents(ctx context.Context) (int64, error) {
	const op = "postgres.Stats.CountEvents"

	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&count); err != nil {
		s.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	return count, nil
}
