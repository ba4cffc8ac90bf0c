package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

const (
	maxMessageLen  = 5000
	messageListMax = 1000
)

// SendLimiter bounds how many messages a single user may send per window.
// Backed by Redis in production.
type SendLimiter interface {
	Allow(ctx context.Context, userID int64) (bool, error)
}

type messageService struct {
	messages     ports.MessageRepository
	interactions ports.InteractionRepository
	limiter      SendLimiter
	log          zerolog.Logger
}

// NewMessageService returns a MessageService implementation.
func NewMessageService(
	messages ports.MessageRepository,
	interactions ports.InteractionRepository,
	limiter SendLimiter,
	log zerolog.Logger,
) ports.MessageService {
	return &messageService{
		messages:     messages,
		interactions: interactions,
		limiter:      limiter,
		log:          log,
	}
}

func (s *messageService) ListMessages(ctx context.Context, interactionID, actorID int64) ([]*domain.Message, error) {
	ok, err := s.interactions.IsParticipant(ctx, interactionID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotParticipant
	}

	return s.messages.ListByInteraction(ctx, interactionID, messageListMax)
}

func (s *messageService) SendMessage(ctx context.Context, interactionID, actorID int64, body string) (*domain.Message, error) {
	body = sanitizeText(body, maxMessageLen)
	if body == "" {
		return nil, domain.Invalid("Message body is required and cannot be empty")
	}

	if _, err := s.interactions.FindByID(ctx, interactionID); err != nil {
		return nil, err
	}

	isParticipant, err := s.interactions.IsParticipant(ctx, interactionID, actorID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, domain.ErrNotParticipant
	}

	allowed, err := s.limiter.Allow(ctx, actorID)
	if err != nil {
		// The limiter is advisory; losing Redis must not take messaging down.
		s.log.Warn().Err(err).Int64("user_id", actorID).Msg("rate limit check failed, allowing send")
	} else if !allowed {
		return nil, domain.ErrRateLimited
	}

	msg, err := s.messages.Create(ctx, &domain.Message{
		InteractionID: interactionID,
		SenderID:      actorID,
		Body:          body,
		SentAt:        time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("interaction_id", interactionID).
		Int64("sender_id", actorID).
		Int64("message_id", msg.ID).
		Msg("message sent")

	return msg, nil
}
