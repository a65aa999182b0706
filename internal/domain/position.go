package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserPosition is the latest known fix for a user. It is ephemeral: only
// the most recent value is ever retained, nothing is persisted beyond the
// stats trail.
type UserPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PositionUpdateRequest struct {
	UserID    string  `json:"user_id" validate:"required,uuid"`
	Latitude  float64 `json:"latitude" validate:"lat"`
	Longitude float64 `json:"longitude" validate:"lng"`
}

type PositionUpdateResponse struct {
	Alerts []string `json:"alerts"` // event ids newly alerted for this user
}

// PositionUpdate is the stats trail row for a processed position update.
type PositionUpdate struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	EventIDs  []uuid.UUID `json:"event_ids"` // events alerted by this update
	CheckedAt time.Time   `json:"checked_at"`
}
