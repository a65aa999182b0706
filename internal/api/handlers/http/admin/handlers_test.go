package admin_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/golang/mock/gomock"

	"github.com/ashishjayamohan/pinpoint/internal/api/handlers/http/admin"
	"github.com/ashishjayamohan/pinpoint/internal/domain"
	mock_service "github.com/ashishjayamohan/pinpoint/internal/service/mocks"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAdminStats_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockStatsService(ctrl)
	h := admin.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 30}).
		Return(&domain.UsageStats{UserCount: 3, EventCount: 9}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes=30", nil)
	rr := httptest.NewRecorder()

	h.AdminStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var got domain.UsageStats
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.UserCount != 3 || got.EventCount != 9 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestAdminStats_DefaultMinutes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockStatsService(ctrl)
	h := admin.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 60}).
		Return(&domain.UsageStats{}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	rr := httptest.NewRecorder()

	h.AdminStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAdminStats_ServiceError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_service.NewMockStatsService(ctrl)
	h := admin.NewHandler(newTestLogger(), svc)

	svc.EXPECT().
		GetStats(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom")).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	rr := httptest.NewRecorder()

	h.AdminStats(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
