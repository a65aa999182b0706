package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/internal/metrics"
)

// NotificationTitle is the alert headline shown to the user.
const NotificationTitle = "New Event Nearby!"

type Enqueuer interface {
	Enqueue(ctx context.Context, payload domain.NotificationPayload) error
}

type userState struct {
	pos      *domain.UserPosition
	notified NotifiedSet
}

// Evaluator applies the filter to event snapshots for every tracked user
// and enqueues one notification per newly eligible event. Position updates
// and snapshots may arrive on different goroutines; both paths take the
// same mutex so two overlapping passes can never both pick the same event.
type Evaluator struct {
	mu     sync.Mutex
	users  map[string]*userState
	filter Filter
	queue  Enqueuer
	logger *slog.Logger
	now    func() time.Time
}

func NewEvaluator(filter Filter, queue Enqueuer, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		users:  make(map[string]*userState),
		filter: filter,
		queue:  queue,
		logger: logger,
		now:    time.Now,
	}
}

// UpdatePosition records the latest fix for userID and evaluates the given
// snapshot against it. Returns the ids of events newly alerted.
func (e *Evaluator) UpdatePosition(ctx context.Context, userID string, pos domain.UserPosition, events []domain.Event) []uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.users[userID]
	if !ok {
		st = &userState{notified: NewNotifiedSet()}
		e.users[userID] = st
	}
	st.pos = &pos

	return e.evaluateLocked(ctx, userID, st, events)
}

// OnSnapshot evaluates a fresh event snapshot for every user with a fix.
func (e *Evaluator) OnSnapshot(ctx context.Context, events []domain.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	metrics.SnapshotsEvaluated.Inc()

	for userID, st := range e.users {
		e.evaluateLocked(ctx, userID, st, events)
	}
}

// TrackedUsers reports how many users currently have evaluator state.
func (e *Evaluator) TrackedUsers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.users)
}

func (e *Evaluator) evaluateLocked(ctx context.Context, userID string, st *userState, events []domain.Event) []uuid.UUID {
	eligible := e.filter.SelectEligible(events, st.pos, e.now(), st.notified)
	if len(eligible) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(eligible))
	for _, ev := range eligible {
		st.notified.Add(ev.ID)
		ids = append(ids, ev.ID)

		if err := e.queue.Enqueue(ctx, makePayload(userID, ev, e.now())); err != nil {
			e.logger.Error("enqueue notification failed",
				slog.String("user_id", userID),
				slog.String("event_id", ev.ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		metrics.NotificationsEnqueued.Inc()
	}

	e.logger.Info("evaluation pass done",
		slog.String("user_id", userID),
		slog.Int("total", len(events)),
		slog.Int("eligible", len(ids)),
	)

	return ids
}

func makePayload(userID string, ev domain.Event, now time.Time) domain.NotificationPayload {
	return domain.NotificationPayload{
		UserID:    userID,
		EventID:   ev.ID,
		Title:     NotificationTitle,
		Body:      fmt.Sprintf("%s - %s", ev.Title, ev.Description),
		DedupeKey: ev.ID.String(),
		CreatedAt: now.UTC(),
	}
}
