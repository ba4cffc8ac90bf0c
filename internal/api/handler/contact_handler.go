package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

type ContactHandler struct {
	contactService ports.ContactService
}

func NewContactHandler(contactService ports.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type contactRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Address       string `json:"address"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
	LastContactAt string `json:"last_contact_at"`
}

func (r contactRequest) input() ports.ContactInput {
	return ports.ContactInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Phone:         r.Phone,
		Company:       r.Company,
		Address:       r.Address,
		Status:        r.Status,
		Notes:         r.Notes,
		LastContactAt: r.LastContactAt,
	}
}

// pagedResponse is the list envelope shared by every paginated endpoint.
type pagedResponse struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

// List returns a page of contacts, optionally filtered by a search term.
//
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Param        q         query     string  false  "Substring match on name, email or company"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        pageSize  query     int     false  "Rows per page (max 100)"
// @Success      200       {object}  pagedResponse
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	result, err := h.contactService.List(c.Request().Context(), ports.ListContactsInput{
		Search:   c.QueryParam("q"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	})
	if err != nil {
		return err
	}
	if result.Items == nil {
		result.Items = []*domain.Contact{}
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Items:    result.Items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

func (h *ContactHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	contact, err := h.contactService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	contact, err := h.contactService.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	contact, err := h.contactService.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete removes a contact. The route is gated behind the admin role.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.contactService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Interactions returns the latest interactions logged against a contact.
func (h *ContactHandler) Interactions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	limit := queryInt(c, "limit")
	items, err := h.contactService.RecentInteractions(c.Request().Context(), id, limit)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Interaction{}
	}
	return c.JSON(http.StatusOK, items)
}
