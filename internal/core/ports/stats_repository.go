package ports

import (
	"context"
	"time"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// StatsRepository runs the aggregate queries behind the dashboard.
type StatsRepository interface {
	TotalContacts(ctx context.Context) (int64, error)
	// InteractionsSince counts interactions created at or after the cutoff.
	InteractionsSince(ctx context.Context, cutoff time.Time) (int64, error)
	// ActiveOpportunities counts opportunities in a non-terminal stage.
	ActiveOpportunities(ctx context.Context) (int64, error)
	// ClosedOpportunities returns the won and total closed counts.
	ClosedOpportunities(ctx context.Context) (won, closed int64, err error)
	// RecentActivity returns the newest interactions and messages as one
	// normalized feed, newest first.
	RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityItem, error)
}
