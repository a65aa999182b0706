package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
)

// recentEventFeed serves the snapshot of alert-relevant events: cache
// first, store on miss. Only events young enough to still pass the
// recency window are fetched, so snapshots stay small.
type recentEventFeed struct {
	cache    EventCache
	repo     EventRepository
	window   time.Duration
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewRecentEventFeed(
	cache EventCache,
	repo EventRepository,
	window time.Duration,
	cacheTTL time.Duration,
	logger *slog.Logger,
) EventFeed {
	return &recentEventFeed{
		cache:    cache,
		repo:     repo,
		window:   window,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (f *recentEventFeed) Recent(ctx context.Context) ([]domain.Event, error) {
	events, ok, err := f.cache.GetRecent(ctx)
	if err != nil {
		// Cache trouble degrades to a store read, it does not fail the pass.
		f.logger.Warn("event cache read failed", slog.Any("error", err))
	}
	if ok && err == nil {
		return events, nil
	}

	since := time.Now().UTC().Add(-f.window)
	events, err = f.repo.ListRecent(ctx, since)
	if err != nil {
		return nil, err
	}

	if err := f.cache.SetRecent(ctx, events, f.cacheTTL); err != nil {
		f.logger.Warn("event cache write failed", slog.Any("error", err))
	}

	return events, nil
}
