package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

type InteractionHandler struct {
	interactionService ports.InteractionService
}

func NewInteractionHandler(interactionService ports.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

type interactionRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ContactID   int64  `json:"contact_id"`
	ScheduledAt string `json:"scheduled_at"`
	DurationMin *int   `json:"duration_min"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

func (r interactionRequest) input() ports.InteractionInput {
	return ports.InteractionInput{
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
		ContactID:   r.ContactID,
		ScheduledAt: r.ScheduledAt,
		DurationMin: r.DurationMin,
		Priority:    r.Priority,
		Status:      r.Status,
		Notes:       r.Notes,
	}
}

type addParticipantRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Role   string `json:"role"`
}

// List returns a page of interactions joined with their contact's name.
//
// @Summary      List interactions
// @Tags         interactions
// @Produce      json
// @Param        q         query     string  false  "Substring match on title or contact"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        pageSize  query     int     false  "Rows per page (max 100)"
// @Success      200       {object}  pagedResponse
// @Router       /api/interactions [get]
func (h *InteractionHandler) List(c echo.Context) error {
	result, err := h.interactionService.List(c.Request().Context(), ports.ListInteractionsInput{
		Search:   c.QueryParam("q"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	})
	if err != nil {
		return err
	}
	if result.Items == nil {
		result.Items = []*domain.Interaction{}
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Items:    result.Items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

func (h *InteractionHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	interaction, err := h.interactionService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interaction)
}

func (h *InteractionHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req interactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	interaction, err := h.interactionService.Create(c.Request().Context(), userID, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, interaction)
}

func (h *InteractionHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req interactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	interaction, err := h.interactionService.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interaction)
}

// Delete removes an interaction. Only the creator may delete it.
func (h *InteractionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.interactionService.Delete(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// AddParticipant registers a user on the interaction thread so they can read
// and send messages.
func (h *InteractionHandler) AddParticipant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req addParticipantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	err = h.interactionService.AddParticipant(c.Request().Context(), ports.AddParticipantInput{
		InteractionID:     id,
		UserID:            req.UserID,
		RoleInInteraction: req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
}
