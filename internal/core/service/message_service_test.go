package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

type stubMessageRepo struct {
	messages []*domain.Message
	nextID   int64
}

func (r *stubMessageRepo) ListByInteraction(_ context.Context, interactionID int64, limit int) ([]*domain.Message, error) {
	out := make([]*domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		if m.InteractionID != interactionID || len(out) == limit {
			continue
		}
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.nextID++
	clone := *m
	clone.ID = r.nextID
	r.messages = append(r.messages, &clone)
	out := clone
	return &out, nil
}

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (l *stubLimiter) Allow(_ context.Context, _ int64) (bool, error) {
	l.calls++
	return l.allowed, l.err
}

func messageFixture(t *testing.T) (*stubInteractionRepo, *stubMessageRepo, *stubLimiter, int64) {
	t.Helper()
	interactions := newStubInteractionRepo()
	svc := newInteractionService(interactions)
	created, err := svc.Create(context.Background(), 7, ports.InteractionInput{Title: "thread", ContactID: 1})
	if err != nil {
		t.Fatalf("fixture interaction failed: %v", err)
	}
	return interactions, &stubMessageRepo{}, &stubLimiter{allowed: true}, created.ID
}

func TestMessageService_SendAndList(t *testing.T) {
	interactions, messages, limiter, interactionID := messageFixture(t)
	svc := NewMessageService(messages, interactions, limiter, zerolog.Nop())
	ctx := context.Background()

	sent, err := svc.SendMessage(ctx, interactionID, 7, "  hello <b>there</b>  ")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if sent.Body != "hello there" {
		t.Fatalf("expected sanitized body, got %q", sent.Body)
	}
	if sent.SenderID != 7 {
		t.Fatalf("unexpected sender: %d", sent.SenderID)
	}

	list, err := svc.ListMessages(ctx, interactionID, 7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].Body != "hello there" {
		t.Fatalf("unexpected thread: %+v", list)
	}
}

func TestMessageService_NonParticipant(t *testing.T) {
	interactions, messages, limiter, interactionID := messageFixture(t)
	svc := NewMessageService(messages, interactions, limiter, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.ListMessages(ctx, interactionID, 99); err != domain.ErrNotParticipant {
		t.Fatalf("expected ErrNotParticipant on list, got %v", err)
	}
	if _, err := svc.SendMessage(ctx, interactionID, 99, "hi"); err != domain.ErrNotParticipant {
		t.Fatalf("expected ErrNotParticipant on send, got %v", err)
	}
	if len(messages.messages) != 0 {
		t.Fatalf("message should not be persisted")
	}
}

func TestMessageService_EmptyBody(t *testing.T) {
	interactions, messages, limiter, interactionID := messageFixture(t)
	svc := NewMessageService(messages, interactions, limiter, zerolog.Nop())

	_, err := svc.SendMessage(context.Background(), interactionID, 7, "  <p></p>  ")
	var ve *domain.ValidationError
	if !asValidation(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMessageService_UnknownInteraction(t *testing.T) {
	interactions, messages, limiter, _ := messageFixture(t)
	svc := NewMessageService(messages, interactions, limiter, zerolog.Nop())

	if _, err := svc.SendMessage(context.Background(), 404, 7, "hi"); err != domain.ErrInteractionNotFound {
		t.Fatalf("expected ErrInteractionNotFound, got %v", err)
	}
}

func TestMessageService_RateLimited(t *testing.T) {
	interactions, messages, limiter, interactionID := messageFixture(t)
	limiter.allowed = false
	svc := NewMessageService(messages, interactions, limiter, zerolog.Nop())

	if _, err := svc.SendMessage(context.Background(), interactionID, 7, "hi"); err != domain.ErrRateLimited {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(messages.messages) != 0 {
		t.Fatalf("rate-limited message should not be persisted")
	}
}

func TestMessageService_LimiterFailureAllowsSend(t *testing.T) {
	interactions, messages, limiter, interactionID := messageFixture(t)
	limiter.allowed = false
	limiter.err = errors.New("redis down")
	svc := NewMessageService(messages, interactions, limiter, zerolog.Nop())

	if _, err := svc.SendMessage(context.Background(), interactionID, 7, "hi"); err != nil {
		t.Fatalf("expected send to succeed when limiter errors, got %v", err)
	}
	if len(messages.messages) != 1 {
		t.Fatalf("expected message persisted despite limiter failure")
	}
}
