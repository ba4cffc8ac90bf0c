package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// MessageService defines use-case operations for interaction messages.
// Both operations require the actor to be a participant of the interaction.
type MessageService interface {
	ListMessages(ctx context.Context, interactionID, actorID int64) ([]*domain.Message, error)
	// SendMessage is additionally rate-limited per sender.
	SendMessage(ctx context.Context, interactionID, actorID int64, body string) (*domain.Message, error)
}
