package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/pkg/e"
)

type locationService struct {
	feed      EventFeed
	evaluator Evaluator
	stats     StatsRepository
	logger    *slog.Logger
}

func NewLocationService(
	feed EventFeed,
	evaluator Evaluator,
	stats StatsRepository,
	logger *slog.Logger,
) LocationService {
	return &locationService{
		feed:      feed,
		evaluator: evaluator,
		stats:     stats,
		logger:    logger,
	}
}

func (s *locationService) UpdatePosition(ctx context.Context, req domain.PositionUpdateRequest) (domain.PositionUpdateResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.PositionUpdateResponse{}, e.ErrInvalidUserID
	}

	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		s.logger.Warn("invalid coordinates",
			slog.String("user_id", req.UserID),
			slog.Float64("lat", req.Latitude),
			slog.Float64("lng", req.Longitude),
		)
		return domain.PositionUpdateResponse{}, e.ErrInvalidCoordinates
	}

	events, err := s.feed.Recent(ctx)
	if err != nil {
		s.logger.Error("event feed failed", slog.Any("error", err))
		return domain.PositionUpdateResponse{}, err
	}

	pos := domain.UserPosition{Latitude: req.Latitude, Longitude: req.Longitude}
	alerted := s.evaluator.UpdatePosition(ctx, req.UserID, pos, events)

	// Stats trail is best effort: a failed insert must not fail the
	// position update itself.
	upd := &domain.PositionUpdate{
		UserID:    userID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		EventIDs:  alerted,
		CheckedAt: time.Now().UTC(),
	}
	if err := s.stats.SavePositionUpdate(ctx, upd); err != nil {
		s.logger.Error("save position update failed",
			slog.String("user_id", req.UserID),
			slog.Any("error", err),
		)
	}

	return domain.PositionUpdateResponse{Alerts: idsToStrings(alerted)}, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return strs
}
