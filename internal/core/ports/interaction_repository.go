package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// ListInteractionsFilter carries the query parameters for listing interactions.
type ListInteractionsFilter struct {
	Search   string // optional: substring match on title and contact name/company
	Page     int    // 1-based
	PageSize int
}

// InteractionRepository defines persistence operations for interactions and
// their participants.
type InteractionRepository interface {
	Create(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error)
	// FindByID returns the interaction joined with contact name and company.
	FindByID(ctx context.Context, id int64) (*domain.Interaction, error)
	List(ctx context.Context, filter ListInteractionsFilter) ([]*domain.Interaction, int64, error)
	Update(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error)
	// Delete removes the interaction and its participant rows atomically.
	Delete(ctx context.Context, id int64) error
	AddParticipant(ctx context.Context, p *domain.Participant) error
	IsParticipant(ctx context.Context, interactionID, userID int64) (bool, error)
}
