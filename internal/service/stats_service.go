package service

import (
	"context"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
)

type statsService struct {
	repo StatsRepository
}

func NewStatsService(repo StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.UsageStats, error) {
	minutes := req.Minutes
	if minutes == 0 {
		minutes = 60
	}

	users, err := s.repo.CountUniqueUsers(ctx, minutes)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.CountEvents(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.UsageStats{
		UserCount:  users,
		EventCount: events,
	}, nil
}
