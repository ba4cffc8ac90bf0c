package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

// OpportunityService implements opportunity CRUD and the pipeline view.
type OpportunityService struct {
	repo   ports.OpportunityRepository
	logger zerolog.Logger
}

func NewOpportunityService(repo ports.OpportunityRepository, logger zerolog.Logger) *OpportunityService {
	return &OpportunityService{repo: repo, logger: logger}
}

func (s *OpportunityService) Create(ctx context.Context, actorID int64, input ports.OpportunityInput) (*domain.Opportunity, error) {
	o, err := opportunityFromInput(input)
	if err != nil {
		return nil, err
	}
	o.CreatedBy = actorID

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("opportunity_id", created.ID).Str("stage", string(created.Stage)).Msg("opportunity created")
	return created, nil
}

func (s *OpportunityService) Get(ctx context.Context, id int64) (*domain.Opportunity, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OpportunityService) List(ctx context.Context, input ports.ListOpportunitiesInput) (*ports.ListOpportunitiesResult, error) {
	page, pageSize := clampPage(input.Page, input.PageSize)

	stage := cleanStr(input.Stage, 32)
	if stage != "" && !domain.OpportunityStage(stage).IsValid() {
		return nil, domain.Invalid("Invalid stage")
	}

	items, total, err := s.repo.List(ctx, ports.ListOpportunitiesFilter{
		Stage:    stage,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListOpportunitiesResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *OpportunityService) Update(ctx context.Context, id int64, input ports.OpportunityInput) (*domain.Opportunity, error) {
	o, err := opportunityFromInput(input)
	if err != nil {
		return nil, err
	}
	o.ID = id
	return s.repo.Update(ctx, o)
}

func (s *OpportunityService) Delete(ctx context.Context, id, actorID int64, actorRoles []string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	admin := false
	for _, r := range actorRoles {
		if r == domain.RoleAdmin {
			admin = true
			break
		}
	}
	if existing.CreatedBy != actorID && !admin {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("opportunity_id", id).Int64("actor_id", actorID).Msg("opportunity deleted")
	return nil
}

func (s *OpportunityService) Pipeline(ctx context.Context) ([]ports.PipelineStage, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byStage := make(map[domain.OpportunityStage][]*domain.Opportunity, len(domain.PipelineStages))
	for _, o := range all {
		byStage[o.Stage] = append(byStage[o.Stage], o)
	}

	stages := make([]ports.PipelineStage, 0, len(domain.PipelineStages))
	for _, stage := range domain.PipelineStages {
		items := byStage[stage]
		var total float64
		for _, o := range items {
			total += o.Value
		}
		if items == nil {
			items = []*domain.Opportunity{}
		}
		stages = append(stages, ports.PipelineStage{
			Stage:      string(stage),
			TotalValue: total,
			Items:      items,
		})
	}
	return stages, nil
}

// opportunityFromInput sanitizes and validates an opportunity payload.
func opportunityFromInput(input ports.OpportunityInput) (*domain.Opportunity, error) {
	title := cleanStr(input.Title, maxTitleLen)
	if title == "" {
		return nil, domain.Invalid("Title is required")
	}
	if input.ContactID == 0 {
		return nil, domain.Invalid("Contact is required")
	}
	if input.Value < 0 {
		return nil, domain.Invalid("value must be a positive number")
	}

	stage := domain.OpportunityStage(cleanStr(input.Stage, 32))
	if stage == "" {
		stage = domain.StageProspect
	}
	if !stage.IsValid() {
		return nil, domain.Invalid("Invalid stage")
	}

	probability := input.Probability
	if probability < 0 {
		probability = 0
	}
	if probability > 100 {
		probability = 100
	}

	closeDate, ok := parseTimeOrNil(input.CloseDate)
	if !ok {
		return nil, domain.Invalid("Invalid close_date")
	}

	return &domain.Opportunity{
		Title:       title,
		Description: sanitizeText(input.Description, maxNotesLen),
		ContactID:   input.ContactID,
		Value:       input.Value,
		Stage:       stage,
		Probability: probability,
		CloseDate:   closeDate,
	}, nil
}
