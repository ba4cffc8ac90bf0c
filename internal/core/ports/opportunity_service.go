package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// OpportunityInput carries the client-supplied opportunity fields.
type OpportunityInput struct {
	Title       string
	Description string
	ContactID   int64
	Value       float64
	Stage       string
	Probability int
	CloseDate   string // RFC 3339 or empty
}

// ListOpportunitiesInput carries pagination and stage filter parameters.
type ListOpportunitiesInput struct {
	Stage    string
	Page     int
	PageSize int
}

// ListOpportunitiesResult is the paginated list envelope.
type ListOpportunitiesResult struct {
	Items    []*domain.Opportunity
	Total    int64
	Page     int
	PageSize int
}

// PipelineStage groups opportunities belonging to one sales stage.
type PipelineStage struct {
	Stage      string
	TotalValue float64
	Items      []*domain.Opportunity
}

// OpportunityService defines use-case operations for opportunities.
type OpportunityService interface {
	Create(ctx context.Context, actorID int64, input OpportunityInput) (*domain.Opportunity, error)
	Get(ctx context.Context, id int64) (*domain.Opportunity, error)
	List(ctx context.Context, input ListOpportunitiesInput) (*ListOpportunitiesResult, error)
	Update(ctx context.Context, id int64, input OpportunityInput) (*domain.Opportunity, error)
	// Delete removes an opportunity. Allowed for the creator or an admin.
	Delete(ctx context.Context, id, actorID int64, actorRoles []string) error
	// Pipeline returns all opportunities grouped by stage in pipeline order.
	Pipeline(ctx context.Context) ([]PipelineStage, error)
}
