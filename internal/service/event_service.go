package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/internal/metrics"
)

type eventService struct {
	repo           EventRepository
	cache          EventCache
	trigger        SnapshotTrigger
	logger         *slog.Logger
	defaultRadiusM float64
}

func NewEventService(
	repo EventRepository,
	cache EventCache,
	trigger SnapshotTrigger,
	logger *slog.Logger,
	defaultRadiusM float64,
) EventService {
	if defaultRadiusM <= 0 {
		defaultRadiusM = domain.DefaultRadiusM
	}
	return &eventService{
		repo:           repo,
		cache:          cache,
		trigger:        trigger,
		logger:         logger,
		defaultRadiusM: defaultRadiusM,
	}
}

func (s *eventService) Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	radius := req.RadiusM
	if radius <= 0 {
		radius = s.defaultRadiusM
	}

	ev := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Timestamp:   time.Now().UTC(),
		RadiusM:     radius,
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}
	metrics.EventsCreated.Inc()

	// Snapshot in cache is now stale; drop it so the next pass sees the
	// new event.
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("event cache invalidate failed", slog.Any("error", err))
	}

	s.trigger.Trigger()

	s.logger.Info("event created",
		slog.String("event_id", ev.ID.String()),
		slog.Float64("lat", ev.Latitude),
		slog.Float64("lng", ev.Longitude),
		slog.Float64("radius_m", ev.RadiusM),
	)

	return ev, nil
}

func (s *eventService) List(ctx context.Context, page, limit int) ([]domain.Event, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *eventService) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return s.repo.Get(ctx, id)
}
