package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

const maxTitleLen = 200

// InteractionService implements interaction CRUD, search and participants.
type InteractionService struct {
	repo   ports.InteractionRepository
	logger zerolog.Logger
}

func NewInteractionService(repo ports.InteractionRepository, logger zerolog.Logger) *InteractionService {
	return &InteractionService{repo: repo, logger: logger}
}

func (s *InteractionService) Create(ctx context.Context, actorID int64, input ports.InteractionInput) (*domain.Interaction, error) {
	i, err := interactionFromInput(input)
	if err != nil {
		return nil, err
	}
	i.CreatedBy = actorID

	created, err := s.repo.Create(ctx, i)
	if err != nil {
		return nil, err
	}

	// The creator joins the thread so messaging works out of the box.
	// Non-fatal: the interaction itself is already persisted.
	participant := &domain.Participant{
		InteractionID:     created.ID,
		UserID:            actorID,
		RoleInInteraction: "creator",
	}
	if err := s.repo.AddParticipant(ctx, participant); err != nil {
		s.logger.Warn().Err(err).Int64("interaction_id", created.ID).Msg("failed to register creator as participant")
	}

	s.logger.Info().Int64("interaction_id", created.ID).Int64("created_by", actorID).Msg("interaction created")
	return created, nil
}

func (s *InteractionService) Get(ctx context.Context, id int64) (*domain.Interaction, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InteractionService) List(ctx context.Context, input ports.ListInteractionsInput) (*ports.ListInteractionsResult, error) {
	page, pageSize := clampPage(input.Page, input.PageSize)

	items, total, err := s.repo.List(ctx, ports.ListInteractionsFilter{
		Search:   cleanStr(input.Search, maxTitleLen),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListInteractionsResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *InteractionService) Update(ctx context.Context, id int64, input ports.InteractionInput) (*domain.Interaction, error) {
	i, err := interactionFromInput(input)
	if err != nil {
		return nil, err
	}
	i.ID = id
	return s.repo.Update(ctx, i)
}

func (s *InteractionService) Delete(ctx context.Context, id, actorID int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != actorID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("interaction_id", id).Int64("actor_id", actorID).Msg("interaction deleted")
	return nil
}

func (s *InteractionService) AddParticipant(ctx context.Context, input ports.AddParticipantInput) error {
	if input.UserID == 0 {
		return domain.Invalid("user_id required")
	}
	if _, err := s.repo.FindByID(ctx, input.InteractionID); err != nil {
		return err
	}

	return s.repo.AddParticipant(ctx, &domain.Participant{
		InteractionID:     input.InteractionID,
		UserID:            input.UserID,
		RoleInInteraction: cleanStr(input.RoleInInteraction, 100),
	})
}

// interactionFromInput sanitizes and validates an interaction payload.
func interactionFromInput(input ports.InteractionInput) (*domain.Interaction, error) {
	title := cleanStr(input.Title, maxTitleLen)
	if title == "" {
		return nil, domain.Invalid("Title is required")
	}

	typ := domain.InteractionType(cleanStr(input.Type, 20))
	if typ == "" {
		typ = domain.InteractionCall
	}
	if !typ.IsValid() {
		return nil, domain.Invalid("Invalid type")
	}

	if input.ContactID == 0 {
		return nil, domain.Invalid("Contact is required")
	}

	priority := domain.InteractionPriority(cleanStr(input.Priority, 20))
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, domain.Invalid("Invalid priority")
	}

	status := domain.InteractionStatus(cleanStr(input.Status, 20))
	if status == "" {
		status = domain.StatusScheduled
	}
	if !status.IsValid() {
		return nil, domain.Invalid("Invalid status")
	}

	if input.DurationMin != nil && *input.DurationMin < 0 {
		return nil, domain.Invalid("duration_min must be a positive number")
	}

	scheduledAt, ok := parseTimeOrNil(input.ScheduledAt)
	if !ok {
		return nil, domain.Invalid("Invalid scheduled_at")
	}

	return &domain.Interaction{
		Title:       title,
		Type:        typ,
		Description: sanitizeText(input.Description, maxNotesLen),
		ContactID:   input.ContactID,
		ScheduledAt: scheduledAt,
		DurationMin: input.DurationMin,
		Priority:    priority,
		Status:      status,
		Notes:       sanitizeText(input.Notes, maxNotesLen),
	}, nil
}
