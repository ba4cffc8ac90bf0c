package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

type OpportunityHandler struct {
	opportunityService ports.OpportunityService
}

func NewOpportunityHandler(opportunityService ports.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

type opportunityRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ContactID   int64   `json:"contact_id"`
	Value       float64 `json:"value"`
	Stage       string  `json:"stage"`
	Probability int     `json:"probability"`
	CloseDate   string  `json:"close_date"`
}

func (r opportunityRequest) input() ports.OpportunityInput {
	return ports.OpportunityInput{
		Title:       r.Title,
		Description: r.Description,
		ContactID:   r.ContactID,
		Value:       r.Value,
		Stage:       r.Stage,
		Probability: r.Probability,
		CloseDate:   r.CloseDate,
	}
}

type pipelineStageResponse struct {
	Stage      string                `json:"stage"`
	TotalValue float64               `json:"total_value"`
	Items      []*domain.Opportunity `json:"items"`
}

func (h *OpportunityHandler) List(c echo.Context) error {
	result, err := h.opportunityService.List(c.Request().Context(), ports.ListOpportunitiesInput{
		Stage:    c.QueryParam("stage"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	})
	if err != nil {
		return err
	}
	if result.Items == nil {
		result.Items = []*domain.Opportunity{}
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Items:    result.Items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

func (h *OpportunityHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	opportunity, err := h.opportunityService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunity)
}

func (h *OpportunityHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req opportunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	opportunity, err := h.opportunityService.Create(c.Request().Context(), userID, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, opportunity)
}

func (h *OpportunityHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req opportunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	opportunity, err := h.opportunityService.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunity)
}

// Delete removes an opportunity. Allowed for the creator or an admin.
func (h *OpportunityHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID, roles, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.opportunityService.Delete(c.Request().Context(), id, userID, roles); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Pipeline returns every opportunity grouped by stage, in pipeline order,
// with the total value per stage.
func (h *OpportunityHandler) Pipeline(c echo.Context) error {
	stages, err := h.opportunityService.Pipeline(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]pipelineStageResponse, 0, len(stages))
	for _, s := range stages {
		items := s.Items
		if items == nil {
			items = []*domain.Opportunity{}
		}
		out = append(out, pipelineStageResponse{
			Stage:      s.Stage,
			TotalValue: s.TotalValue,
			Items:      items,
		})
	}
	return c.JSON(http.StatusOK, out)
}
