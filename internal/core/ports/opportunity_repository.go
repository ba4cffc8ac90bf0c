package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// ListOpportunitiesFilter carries the query parameters for listing opportunities.
type ListOpportunitiesFilter struct {
	Stage    string // optional: exact stage filter
	Page     int
	PageSize int
}

// OpportunityRepository defines persistence operations for opportunities.
type OpportunityRepository interface {
	Create(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error)
	FindByID(ctx context.Context, id int64) (*domain.Opportunity, error)
	List(ctx context.Context, filter ListOpportunitiesFilter) ([]*domain.Opportunity, int64, error)
	Update(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error)
	Delete(ctx context.Context, id int64) error
	// ListAll returns every opportunity for the pipeline view.
	ListAll(ctx context.Context) ([]*domain.Opportunity, error)
}
