package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siccrm/crm-api/internal/api/metrics"
	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// List returns the message thread of an interaction, oldest first. The caller
// must be a participant.
func (h *MessageHandler) List(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	messages, err := h.messageService.ListMessages(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return c.JSON(http.StatusOK, messages)
}

// Send appends a message to the interaction thread. Participant-only and
// rate-limited per sender.
func (h *MessageHandler) Send(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	message, err := h.messageService.SendMessage(c.Request().Context(), id, userID, req.Body)
	if err != nil {
		if err == domain.ErrRateLimited {
			metrics.RateLimitedTotal.WithLabelValues("messages").Inc()
		}
		return err
	}
	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, message)
}
