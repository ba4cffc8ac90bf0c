package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

const defaultActivityLimit = 25

type statsService struct {
	repo ports.StatsRepository
	log  zerolog.Logger
}

// NewStatsService returns a StatsService implementation.
func NewStatsService(repo ports.StatsRepository, log zerolog.Logger) ports.StatsService {
	return &statsService{repo: repo, log: log}
}

func (s *statsService) Snapshot(ctx context.Context) (*ports.StatsSnapshot, error) {
	totalContacts, err := s.repo.TotalContacts(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	interactions, err := s.repo.InteractionsSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ActiveOpportunities(ctx)
	if err != nil {
		return nil, err
	}

	won, closed, err := s.repo.ClosedOpportunities(ctx)
	if err != nil {
		return nil, err
	}

	var conversion float64
	if closed > 0 {
		conversion = float64(won) / float64(closed) * 100
	}

	return &ports.StatsSnapshot{
		TotalContacts:         totalContacts,
		InteractionsThisMonth: interactions,
		ActiveOpportunities:   active,
		ConversionRate:        conversion,
	}, nil
}

func (s *statsService) RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityItem, error) {
	if limit < 1 || limit > defaultActivityLimit {
		limit = defaultActivityLimit
	}
	return s.repo.RecentActivity(ctx, limit)
}
