package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/ashishjayamohan/pinpoint/internal/config"
	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/internal/metrics"
	"github.com/ashishjayamohan/pinpoint/pkg/e"
)

// DedupeKeyHeader carries the payload's dedupe key so the delivery side
// can drop repeats even if the same alert slips through twice.
const DedupeKeyHeader = "X-Dedupe-Key"

// NotificationSender drains the queue and pushes each alert to the
// configured delivery endpoint.
type NotificationSender struct {
	logger *slog.Logger
	cfg    config.NotifierConfig
	queue  NotifyQueueConsumer
	http   *http.Client
}

func NewNotificationSender(logger *slog.Logger, cfg config.NotifierConfig, q NotifyQueueConsumer) *NotificationSender {
	return &NotificationSender{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *NotificationSender) Run(ctx context.Context) {
	if s.cfg.Disabled {
		s.logger.Warn("notificationSender DISABLED, not consuming queue")
		return
	}

	s.logger.Info("notificationSender STARTED", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notificationSender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.logger.Info("sending notification",
			slog.String("user_id", payload.UserID),
			slog.String("event_id", payload.EventID.String()),
		)
		s.sendWithRetry(ctx, payload)
	}
}

func (s *NotificationSender) sendWithRetry(ctx context.Context, p domain.NotificationPayload) {
	const maxRetries = 3

	body, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("marshal notification payload failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create notification request failed", slog.String("error", err.Error()))
			return
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(DedupeKeyHeader, p.DedupeKey)

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			metrics.NotificationsSent.WithLabelValues("sent").Inc()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("notification push failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}

	metrics.NotificationsSent.WithLabelValues("failed").Inc()
}
