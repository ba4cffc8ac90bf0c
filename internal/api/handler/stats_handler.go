package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

type statsResponse struct {
	TotalContacts         int64   `json:"total_contacts"`
	InteractionsThisMonth int64   `json:"interactions_this_month"`
	ActiveOpportunities   int64   `json:"active_opportunities"`
	ConversionRate        float64 `json:"conversion_rate"`
}

// Snapshot returns the dashboard aggregates.
//
// @Summary      Dashboard stats
// @Tags         stats
// @Produce      json
// @Success      200  {object}  statsResponse
// @Router       /api/stats [get]
func (h *StatsHandler) Snapshot(c echo.Context) error {
	snap, err := h.statsService.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{
		TotalContacts:         snap.TotalContacts,
		InteractionsThisMonth: snap.InteractionsThisMonth,
		ActiveOpportunities:   snap.ActiveOpportunities,
		ConversionRate:        snap.ConversionRate,
	})
}

// RecentActivity returns the newest interactions and messages as one feed.
func (h *StatsHandler) RecentActivity(c echo.Context) error {
	limit := queryInt(c, "limit")
	items, err := h.statsService.RecentActivity(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.ActivityItem{}
	}
	return c.JSON(http.StatusOK, items)
}
