package domain

import "time"

type CreateEventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" validate:"lat"`
	Longitude   float64 `json:"longitude" validate:"lng"`
	RadiusM     float64 `json:"notification_radius" validate:"omitempty,radius_m"`
}

type CreateEventResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

type ListEventsResponse struct {
	Events []Event `json:"events"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Total  int64   `json:"total"`
}
