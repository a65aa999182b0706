package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRadiusM is the catchment area applied when a client does not
// supply one.
const DefaultRadiusM = 1000.0

// Event is a single user-submitted, location-tagged report. Latitude and
// longitude are stored as separate scalar fields for serialization
// compatibility with the backing store. Once persisted a record is
// read-only: there is no update or delete operation.
type Event struct {
	ID          uuid.UUID `json:"id"` // uuid.Nil until the store assigns one
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`  // -90..90
	Longitude   float64   `json:"longitude"` // -180..180
	Timestamp   time.Time `json:"timestamp"`
	RadiusM     float64   `json:"notification_radius"` // meters, > 0
}

func (e Event) Persisted() bool {
	return e.ID != uuid.Nil
}
