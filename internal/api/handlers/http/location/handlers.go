package location

import (
	"encoding/json"
	"io"
	"net/http"

	"log/slog"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/internal/service"
	"github.com/ashishjayamohan/pinpoint/pkg/validator"
)

type Handler struct {
	logger   *slog.Logger
	location service.LocationService
}

func NewHandler(logger *slog.Logger, location service.LocationService) *Handler {
	return &Handler{
		logger:   logger,
		location: location,
	}
}

// PositionUpdate records the caller's newest fix and answers with the
// event ids that just became eligible for them.
func (h *Handler) PositionUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.PositionUpdateRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp, err := h.location.UpdatePosition(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}
