package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// EventService covers the event lifecycle: created once, read forever.
type EventService interface {
	Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error)
	List(ctx context.Context, page, limit int) ([]domain.Event, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

// LocationService ingests position updates and reports which events were
// newly alerted for the caller.
type LocationService interface {
	UpdatePosition(ctx context.Context, req domain.PositionUpdateRequest) (domain.PositionUpdateResponse, error)
}

type StatsService interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.UsageStats, error)
}

// EventRepository is the store-side contract. No update, no delete.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, page, limit int) ([]domain.Event, int64, error)
	ListRecent(ctx context.Context, since time.Time) ([]domain.Event, error)
}

type EventCache interface {
	GetRecent(ctx context.Context) ([]domain.Event, bool, error)
	SetRecent(ctx context.Context, events []domain.Event, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// EventFeed delivers the current snapshot of alert-relevant events.
type EventFeed interface {
	Recent(ctx context.Context) ([]domain.Event, error)
}

// Evaluator is the proximity core as seen from the service layer.
type Evaluator interface {
	UpdatePosition(ctx context.Context, userID string, pos domain.UserPosition, events []domain.Event) []uuid.UUID
}

// SnapshotTrigger requests an immediate evaluation pass, so a fresh event
// does not wait for the next poll tick.
type SnapshotTrigger interface {
	Trigger()
}

type StatsRepository interface {
	SavePositionUpdate(ctx context.Context, upd *domain.PositionUpdate) error
	CountUniqueUsers(ctx context.Context, minutes int) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
}

// NotifyQueueConsumer is the delivery side of the notification queue.
type NotifyQueueConsumer interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.NotificationPayload, error)
}

type Service struct {
	EventService    EventService
	LocationService LocationService
	StatsService    StatsService
}

func NewService(
	eventService EventService,
	locationService LocationService,
	statsService StatsService,
) *Service {
	return &Service{
		EventService:    eventService,
		LocationService: locationService,
		StatsService:    statsService,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	return s.EventService.Create(ctx, req)
}

func (s *Service) List(ctx context.Context, page, limit int) ([]domain.Event, int64, error) {
	return s.EventService.List(ctx, page, limit)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return s.EventService.Get(ctx, id)
}

func (s *Service) UpdatePosition(ctx context.Context, req domain.PositionUpdateRequest) (domain.PositionUpdateResponse, error) {
	return s.LocationService.UpdatePosition(ctx, req)
}

func (s *Service) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.UsageStats, error) {
	return s.StatsService.GetStats(ctx, req)
}
