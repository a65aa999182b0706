package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationPayload is one queued proximity alert. DedupeKey travels to
// the delivery side so the platform can drop duplicates as a second line
// of defense; it is the event id for persisted events.
type NotificationPayload struct {
	UserID    string    `json:"user_id"`
	EventID   uuid.UUID `json:"event_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	DedupeKey string    `json:"dedupe_key"`
	CreatedAt time.Time `json:"created_at"`
}
