package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/config"
	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/internal/service"
	mock_service "github.com/ashishjayamohan/pinpoint/internal/service/mocks"
	"github.com/ashishjayamohan/pinpoint/pkg/e"
)

func TestNotificationSender_PushesWithDedupeHeader(t *testing.T) {
	t.Parallel()

	type push struct {
		dedupe      string
		contentType string
	}
	received := make(chan push, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- push{
			dedupe:      r.Header.Get(service.DedupeKeyHeader),
			contentType: r.Header.Get("Content-Type"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventID := uuid.New()
	payload := domain.NotificationPayload{
		UserID:    uuid.New().String(),
		EventID:   eventID,
		Title:     "New Event Nearby!",
		Body:      "Street fair - Live music",
		DedupeKey: eventID.String(),
	}

	q := mock_service.NewMockNotifyQueueConsumer(ctrl)
	q.EXPECT().BRPop(gomock.Any(), gomock.Any()).Return(payload, nil).Times(1)
	q.EXPECT().BRPop(gomock.Any(), gomock.Any()).Return(domain.NotificationPayload{}, e.ErrQueueEmpty).AnyTimes()

	sender := service.NewNotificationSender(newTestLogger(), config.NotifierConfig{URL: srv.URL}, q)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sender.Run(ctx)
		close(done)
	}()

	select {
	case got := <-received:
		if got.dedupe != eventID.String() {
			t.Errorf("expected dedupe key %q, got %q", eventID.String(), got.dedupe)
		}
		if got.contentType != "application/json" {
			t.Errorf("unexpected content type %q", got.contentType)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("notification never delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("sender did not stop after cancel")
	}
}

func TestNotificationSender_DisabledDoesNotConsume(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock_service.NewMockNotifyQueueConsumer(ctrl)
	// No BRPop expectations: the sender must return without touching the
	// queue when disabled.

	sender := service.NewNotificationSender(newTestLogger(), config.NotifierConfig{URL: "http://x", Disabled: true}, q)

	done := make(chan struct{})
	go func() {
		sender.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled sender must return immediately")
	}
}
