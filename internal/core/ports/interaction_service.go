package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// InteractionInput carries the client-supplied interaction fields.
type InteractionInput struct {
	Title       string
	Type        string
	Description string
	ContactID   int64
	ScheduledAt string // RFC 3339 or empty
	DurationMin *int
	Priority    string
	Status      string
	Notes       string
}

// ListInteractionsInput carries pagination and search parameters.
type ListInteractionsInput struct {
	Search   string
	Page     int
	PageSize int
}

// ListInteractionsResult is the paginated list envelope.
type ListInteractionsResult struct {
	Items    []*domain.Interaction
	Total    int64
	Page     int
	PageSize int
}

// AddParticipantInput registers a user on an interaction thread.
type AddParticipantInput struct {
	InteractionID     int64
	UserID            int64
	RoleInInteraction string
}

// InteractionService defines use-case operations for interactions.
type InteractionService interface {
	// Create validates input, persists the interaction with actorID as
	// creator and registers the creator as a participant.
	Create(ctx context.Context, actorID int64, input InteractionInput) (*domain.Interaction, error)
	Get(ctx context.Context, id int64) (*domain.Interaction, error)
	List(ctx context.Context, input ListInteractionsInput) (*ListInteractionsResult, error)
	Update(ctx context.Context, id int64, input InteractionInput) (*domain.Interaction, error)
	// Delete removes an interaction. Only the original creator may delete;
	// anyone else gets ErrForbidden.
	Delete(ctx context.Context, id, actorID int64) error
	AddParticipant(ctx context.Context, input AddParticipantInput) error
}
