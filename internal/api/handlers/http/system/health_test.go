package system_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/ashishjayamohan/pinpoint/internal/api/handlers/http/system"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSystemHealth_AllHealthy(t *testing.T) {
	t.Parallel()

	h := system.NewHandler(testLogger(), map[string]system.Pinger{
		"postgres": pingFunc(func(ctx context.Context) error { return nil }),
		"redis":    pingFunc(func(ctx context.Context) error { return nil }),
	})

	rec := httptest.NewRecorder()
	h.SystemHealth(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("expected status ok, got %q", body.Status)
	}
	if body.Checks["postgres"] != "ok" || body.Checks["redis"] != "ok" {
		t.Fatalf("unexpected checks: %v", body.Checks)
	}
}

func TestSystemHealth_DependencyDown(t *testing.T) {
	t.Parallel()

	h := system.NewHandler(testLogger(), map[string]system.Pinger{
		"postgres": pingFunc(func(ctx context.Context) error { return nil }),
		"redis":    pingFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
	})

	rec := httptest.NewRecorder()
	h.SystemHealth(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "degraded" {
		t.Fatalf("expected status degraded, got %q", body.Status)
	}
	if body.Checks["postgres"] != "ok" {
		t.Fatalf("healthy dependency should report ok, got %q", body.Checks["postgres"])
	}
	if body.Checks["redis"] != "connection refused" {
		t.Fatalf("failing dependency should carry the error, got %q", body.Checks["redis"])
	}
}

func TestSystemHealth_NoChecks(t *testing.T) {
	t.Parallel()

	h := system.NewHandler(testLogger(), nil)

	rec := httptest.NewRecorder()
	h.SystemHealth(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
