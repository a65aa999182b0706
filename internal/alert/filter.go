package alert

import (
	"time"

	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
)

// DefaultRecencyWindow bounds how old an event may be and still alert.
// Product choice inherited from the original client; configurable, not an
// invariant.
const DefaultRecencyWindow = 60 * time.Second

// NotifiedSet holds event ids that have already been alerted. The filter
// only reads it; mutation belongs to the caller.
type NotifiedSet map[uuid.UUID]struct{}

func NewNotifiedSet() NotifiedSet {
	return make(NotifiedSet)
}

func (s NotifiedSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s NotifiedSet) Add(id uuid.UUID) {
	s[id] = struct{}{}
}

type Filter struct {
	Window time.Duration
}

func NewFilter(window time.Duration) Filter {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	return Filter{Window: window}
}

// SelectEligible returns, in snapshot order, the events that should alert
// a user positioned at pos: persisted, not yet in notified, created within
// the recency window before now, and within their own notification radius.
//
// pos == nil means no fix yet and yields an empty result. Events with a
// future timestamp are not recent. Malformed records (out-of-range
// coordinates, non-positive radius) are skipped so one bad record cannot
// sink the whole pass. The function is pure and never mutates notified.
func (f Filter) SelectEligible(events []domain.Event, pos *domain.UserPosition, now time.Time, notified NotifiedSet) []domain.Event {
	if pos == nil {
		return nil
	}

	eligible := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if !ev.Persisted() || notified.Has(ev.ID) {
			continue
		}
		if ev.Latitude < -90 || ev.Latitude > 90 || ev.Longitude < -180 || ev.Longitude > 180 || ev.RadiusM <= 0 {
			continue
		}

		age := now.Sub(ev.Timestamp)
		if age < 0 || age >= f.Window {
			continue
		}

		dist := DistanceM(pos.Latitude, pos.Longitude, ev.Latitude, ev.Longitude)
		if dist > ev.RadiusM {
			continue
		}

		eligible = append(eligible, ev)
	}

	return eligible
}
