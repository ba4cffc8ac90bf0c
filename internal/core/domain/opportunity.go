package domain

import (
	"errors"
	"time"
)

// OpportunityStage is the sales pipeline stage.
type OpportunityStage string

const (
	StageProspect    OpportunityStage = "prospect"
	StageQualified   OpportunityStage = "qualified"
	StageProposal    OpportunityStage = "proposal"
	StageNegotiation OpportunityStage = "negotiation"
	StageClosedWon   OpportunityStage = "closed_won"
	StageClosedLost  OpportunityStage = "closed_lost"
)

// PipelineStages lists all stages in pipeline order.
var PipelineStages = []OpportunityStage{
	StageProspect,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

var ErrOpportunityNotFound = errors.New("opportunity not found")

func (s OpportunityStage) IsValid() bool {
	for _, stage := range PipelineStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Closed reports whether the stage is terminal (won or lost).
func (s OpportunityStage) Closed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Opportunity is a potential deal tracked through the pipeline.
type Opportunity struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	ContactID   int64            `json:"contact_id"`
	Value       float64          `json:"value"`
	Stage       OpportunityStage `json:"stage"`
	Probability int              `json:"probability"`
	CloseDate   *time.Time       `json:"close_date,omitempty"`
	CreatedBy   int64            `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
