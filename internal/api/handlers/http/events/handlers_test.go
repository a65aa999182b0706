package events_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/api/handlers/http/events"
	"github.com/ashishjayamohan/pinpoint/internal/domain"
	mock_service "github.com/ashishjayamohan/pinpoint/internal/service/mocks"
	"github.com/ashishjayamohan/pinpoint/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestEventCreate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	reqBody := `{"title":"Street fair","description":"Live music","latitude":0,"longitude":0.008,"notification_radius":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	wantReq := domain.CreateEventRequest{
		Title:       "Street fair",
		Description: "Live music",
		Latitude:    0,
		Longitude:   0.008,
		RadiusM:     1000,
	}
	id := uuid.New()
	svc.EXPECT().
		Create(gomock.Any(), wantReq).
		Return(&domain.Event{ID: id, Title: "Street fair", Timestamp: time.Now()}, nil).
		Times(1)

	h.EventCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	resp := decodeJSON[domain.CreateEventResponse](t, rr)
	if resp.ID != id.String() {
		t.Fatalf("unexpected id: %+v", resp)
	}
}

func TestEventCreate_InvalidJSON(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString(`{"title":`))
	rr := httptest.NewRecorder()

	h.EventCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestEventCreate_TrailingGarbageRejected(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events",
		bytes.NewBufferString(`{"title":"x","latitude":0,"longitude":0}{"more":1}`))
	rr := httptest.NewRecorder()

	h.EventCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestEventCreate_ValidationFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	// Latitude 100 is outside -90..90; the service must never be called.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events",
		bytes.NewBufferString(`{"title":"x","latitude":100,"longitude":0}`))
	rr := httptest.NewRecorder()

	h.EventCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEventCreate_EmptyTitleRejected(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events",
		bytes.NewBufferString(`{"title":"","latitude":0,"longitude":0}`))
	rr := httptest.NewRecorder()

	h.EventCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestEventList_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	list := []domain.Event{{ID: uuid.New(), Title: "a"}, {ID: uuid.New(), Title: "b"}}
	svc.EXPECT().List(gomock.Any(), 2, 10).Return(list, int64(12), nil).Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?page=2&limit=10", nil)
	rr := httptest.NewRecorder()

	h.EventList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	resp := decodeJSON[domain.ListEventsResponse](t, rr)
	if resp.Total != 12 || len(resp.Events) != 2 || resp.Page != 2 || resp.Limit != 10 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestEventList_LimitCapped(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	// The service must see the cap, never the raw client value.
	svc.EXPECT().List(gomock.Any(), 1, 100).Return([]domain.Event{}, int64(0), nil).Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?limit=1000000", nil)
	rr := httptest.NewRecorder()

	h.EventList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	resp := decodeJSON[domain.ListEventsResponse](t, rr)
	if resp.Limit != 100 {
		t.Fatalf("expected capped limit 100 in response, got %d", resp.Limit)
	}
}

func TestEventGet_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	id := uuid.New()
	svc.EXPECT().Get(gomock.Any(), id).Return(nil, fmt.Errorf("get: %w", e.ErrNotFound)).Times(1)

	r := chi.NewRouter()
	r.Get("/api/v1/events/{id}", h.EventGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+id.String(), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestEventGet_InvalidID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockEventService(ctrl)
	h := events.NewHandler(newTestLogger(), svc)

	r := chi.NewRouter()
	r.Get("/api/v1/events/{id}", h.EventGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/not-a-uuid", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
