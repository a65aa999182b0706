package events

import (
	"encoding/json"
	"io"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/internal/service"
	"github.com/ashishjayamohan/pinpoint/pkg/validator"
)

type Handler struct {
	logger *slog.Logger
	events service.EventService
}

func NewHandler(logger *slog.Logger, events service.EventService) *Handler {
	return &Handler{
		logger: logger,
		events: events,
	}
}

func (h *Handler) EventCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEventRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	// Reject trailing garbage after the first JSON object.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ev, err := h.events.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, domain.CreateEventResponse{
		ID:        ev.ID.String(),
		Timestamp: ev.Timestamp,
	})
}

func (h *Handler) EventList(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
		h.log(r).Warn("limit capped", slog.Int("limit", limit))
	}

	events, total, err := h.events.List(r.Context(), page, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.ListEventsResponse{
		Events: events,
		Page:   page,
		Limit:  limit,
		Total:  total,
	})
}

func (h *Handler) EventGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	ev, err := h.events.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ev)
}
