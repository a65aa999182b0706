package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashishjayamohan/pinpoint/internal/api/handlers/http/admin"
	"github.com/ashishjayamohan/pinpoint/internal/api/handlers/http/events"
	"github.com/ashishjayamohan/pinpoint/internal/api/handlers/http/location"
	"github.com/ashishjayamohan/pinpoint/internal/api/handlers/http/system"
	"github.com/ashishjayamohan/pinpoint/internal/config"
	"github.com/ashishjayamohan/pinpoint/internal/middleware"
	"github.com/ashishjayamohan/pinpoint/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, checks map[string]system.Pinger) *Server {
	eventsHandler := events.NewHandler(logger, svc.EventService)
	locationHandler := location.NewHandler(logger, svc.LocationService)
	adminHandler := admin.NewHandler(logger, svc.StatsService)
	systemHandler := system.NewHandler(logger, checks)

	r := InitRouter(cfg, eventsHandler, locationHandler, adminHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	eventsHandler *events.Handler,
	locationHandler *location.Handler,
	adminHandler *admin.Handler,
	systemHandler *system.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/events", func(er chi.Router) {
			er.Use(middleware.Limit(10, 20, 5*time.Minute, logger))
			er.Post("/", eventsHandler.EventCreate)
			er.Get("/", eventsHandler.EventList)
			er.Get("/{id}", eventsHandler.EventGet)
		})

		api.Route("/location", func(lr chi.Router) {
			lr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))
			lr.Post("/", locationHandler.PositionUpdate)
		})

		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))
			ar.Get("/stats", adminHandler.AdminStats)
		})

		api.Get("/health", systemHandler.SystemHealth)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("🚀 Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("🛑 Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
