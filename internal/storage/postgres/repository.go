package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
)

// EventRepository is append-and-read only: events are immutable once the
// store assigns an id, so there is no update or delete.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, page, limit int) ([]domain.Event, int64, error)
	ListRecent(ctx context.Context, since time.Time) ([]domain.Event, error)
}

type StatsRepository interface {
	SavePositionUpdate(ctx context.Context, upd *domain.PositionUpdate) error
	CountUniqueUsers(ctx context.Context, minutes int) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
}

func (p *Postgres) Events() EventRepository { return p.EventRepo }
func (p *Postgres) Stats() StatsRepository  { return p.StatRepo }
