package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	// ListByInteraction returns messages in send order, joined with the
	// sender's name, capped at limit rows.
	ListByInteraction(ctx context.Context, interactionID int64, limit int) ([]*domain.Message, error)
	// Create inserts the message and returns the persisted row with
	// sender_name populated.
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
}
