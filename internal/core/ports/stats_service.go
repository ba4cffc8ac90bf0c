package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// StatsSnapshot is the dashboard aggregate view.
type StatsSnapshot struct {
	TotalContacts         int64
	InteractionsThisMonth int64
	ActiveOpportunities   int64
	// ConversionRate is closed-won over all closed opportunities, percent.
	// Zero when nothing has closed yet.
	ConversionRate float64
}

// StatsService serves dashboard aggregates and the recent-activity feed.
type StatsService interface {
	Snapshot(ctx context.Context) (*StatsSnapshot, error)
	RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityItem, error)
}
