package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/siccrm/crm-api/internal/core/domain"
)

type stubMessageService struct {
	listFn func(ctx context.Context, interactionID, actorID int64) ([]*domain.Message, error)
	sendFn func(ctx context.Context, interactionID, actorID int64, body string) (*domain.Message, error)
}

func (s *stubMessageService) ListMessages(ctx context.Context, interactionID, actorID int64) ([]*domain.Message, error) {
	return s.listFn(ctx, interactionID, actorID)
}

func (s *stubMessageService) SendMessage(ctx context.Context, interactionID, actorID int64, body string) (*domain.Message, error) {
	return s.sendFn(ctx, interactionID, actorID, body)
}

func TestMessageHandler_Send(t *testing.T) {
	stub := &stubMessageService{
		sendFn: func(ctx context.Context, interactionID, actorID int64, body string) (*domain.Message, error) {
			if interactionID != 3 || actorID != 7 || body != "hello" {
				t.Fatalf("unexpected args: %d %d %q", interactionID, actorID, body)
			}
			return &domain.Message{ID: 1, InteractionID: 3, SenderID: 7, Body: body}, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/interactions/3/messages", `{"body":"hello"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", int64(7))

	if err := h.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestMessageHandler_Send_MissingClaims(t *testing.T) {
	h := NewMessageHandler(&stubMessageService{})

	c, _ := newTestContext(http.MethodPost, "/api/interactions/3/messages", `{"body":"hi"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.Send(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMessageHandler_Send_NotParticipant(t *testing.T) {
	stub := &stubMessageService{
		sendFn: func(ctx context.Context, interactionID, actorID int64, body string) (*domain.Message, error) {
			return nil, domain.ErrNotParticipant
		},
	}
	h := NewMessageHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/interactions/3/messages", `{"body":"hi"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", int64(7))

	if err := h.Send(c); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestMessageHandler_List_EmptyThreadIsArray(t *testing.T) {
	stub := &stubMessageService{
		listFn: func(ctx context.Context, interactionID, actorID int64) ([]*domain.Message, error) {
			return nil, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/interactions/3/messages", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", int64(7))

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}
