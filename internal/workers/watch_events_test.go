package workers_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/internal/workers"
)

type stubFeed struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
	calls  int
}

func (f *stubFeed) Recent(context.Context) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.events, f.err
}

type recordingHandler struct {
	snapshots chan []domain.Event
}

func (h *recordingHandler) OnSnapshot(_ context.Context, events []domain.Event) {
	h.snapshots <- events
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestEventWatcher_TriggerForcesImmediatePass(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{events: []domain.Event{{ID: uuid.New(), Title: "x"}}}
	handler := &recordingHandler{snapshots: make(chan []domain.Event, 4)}

	// Long interval: only Trigger can cause a pass inside the test window.
	w := workers.NewEventWatcher(feed, handler, newTestLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Trigger()

	select {
	case got := <-handler.snapshots:
		if len(got) != 1 {
			t.Fatalf("expected snapshot with 1 event, got %d", len(got))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("trigger never produced a pass")
	}
}

func TestEventWatcher_TickerDrivesPasses(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{}
	handler := &recordingHandler{snapshots: make(chan []domain.Event, 16)}

	w := workers.NewEventWatcher(feed, handler, newTestLogger(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	select {
	case <-handler.snapshots:
	case <-time.After(3 * time.Second):
		t.Fatal("ticker never produced a pass")
	}
}

func TestEventWatcher_FeedErrorSkipsHandler(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{err: errors.New("db down")}
	handler := &recordingHandler{snapshots: make(chan []domain.Event, 4)}

	w := workers.NewEventWatcher(feed, handler, newTestLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Trigger()

	select {
	case <-handler.snapshots:
		t.Fatal("handler must not run when the feed fails")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEventWatcher_TriggerNeverBlocks(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{}
	handler := &recordingHandler{snapshots: make(chan []domain.Event, 1)}

	w := workers.NewEventWatcher(feed, handler, newTestLogger(), time.Hour)

	// Not running: repeated triggers must still return immediately.
	for i := 0; i < 10; i++ {
		w.Trigger()
	}
}
