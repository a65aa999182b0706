package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ashishjayamohan/pinpoint/internal/alert"
	"github.com/ashishjayamohan/pinpoint/internal/api"
	"github.com/ashishjayamohan/pinpoint/internal/api/handlers/http/system"
	"github.com/ashishjayamohan/pinpoint/internal/config"
	"github.com/ashishjayamohan/pinpoint/internal/redis"
	"github.com/ashishjayamohan/pinpoint/internal/service"
	"github.com/ashishjayamohan/pinpoint/internal/storage/postgres"
	"github.com/ashishjayamohan/pinpoint/internal/workers"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Watcher    *workers.EventWatcher
	Notifier   *service.NotificationSender
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		storage.Pool.Close()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	eventCache := redis.NewEventCache(redisClient)
	notifyQueue := redis.NewNotifyQueue(redisClient.Client, "notifications:queue")

	filter := alert.NewFilter(cfg.Alert.RecencyWindow)
	evaluator := alert.NewEvaluator(filter, notifyQueue, logger)

	feed := service.NewRecentEventFeed(
		eventCache,
		storage.Events(),
		cfg.Alert.RecencyWindow,
		cfg.Alert.CacheTTL,
		logger,
	)

	watcher := workers.NewEventWatcher(feed, evaluator, logger, cfg.Alert.PollInterval)

	eventSvc := service.NewEventService(storage.Events(), eventCache, watcher, logger, cfg.Alert.DefaultRadiusM)
	locationSvc := service.NewLocationService(feed, evaluator, storage.Stats(), logger)
	statsSvc := service.NewStatsService(storage.Stats())

	srv := service.NewService(eventSvc, locationSvc, statsSvc)

	checks := map[string]system.Pinger{
		"postgres": storage.Pool,
		"redis":    redisClient,
	}

	httpServer := api.NewServer(cfg, logger, srv, checks)
	notifier := service.NewNotificationSender(logger, cfg.Notifier, notifyQueue)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Watcher:    watcher,
		Notifier:   notifier,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components shut down",
		slog.Duration("latency", time.Since(start)))
}
