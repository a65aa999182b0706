package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
)

type EventFeed interface {
	Recent(ctx context.Context) ([]domain.Event, error)
}

type SnapshotHandler interface {
	OnSnapshot(ctx context.Context, events []domain.Event)
}

// EventWatcher is the change stream stand-in: it polls the event feed on
// an interval and hands each snapshot to the handler. Trigger forces an
// immediate pass so freshly created events alert without waiting a tick.
type EventWatcher struct {
	feed     EventFeed
	handler  SnapshotHandler
	logger   *slog.Logger
	interval time.Duration
	trigger  chan struct{}
}

func NewEventWatcher(feed EventFeed, handler SnapshotHandler, logger *slog.Logger, interval time.Duration) *EventWatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &EventWatcher{
		feed:     feed,
		handler:  handler,
		logger:   logger,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger never blocks; a pass already pending covers the request.
func (w *EventWatcher) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *EventWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("eventWatcher STARTED", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("eventWatcher STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			w.pass(ctx)
		case <-w.trigger:
			w.pass(ctx)
		}
	}
}

func (w *EventWatcher) pass(ctx context.Context) {
	events, err := w.feed.Recent(ctx)
	if err != nil {
		w.logger.Error("event feed poll failed", slog.Any("error", err))
		return
	}
	w.handler.OnSnapshot(ctx, events)
}
