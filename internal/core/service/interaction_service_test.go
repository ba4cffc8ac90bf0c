package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

type participantKey struct {
	interactionID int64
	userID        int64
}

type stubInteractionRepo struct {
	interactions map[int64]*domain.Interaction
	participants map[participantKey]string
	nextID       int64
}

func newStubInteractionRepo() *stubInteractionRepo {
	return &stubInteractionRepo{
		interactions: make(map[int64]*domain.Interaction),
		participants: make(map[participantKey]string),
	}
}

func (r *stubInteractionRepo) Create(_ context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	r.nextID++
	clone := *i
	clone.ID = r.nextID
	r.interactions[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubInteractionRepo) FindByID(_ context.Context, id int64) (*domain.Interaction, error) {
	i, ok := r.interactions[id]
	if !ok {
		return nil, domain.ErrInteractionNotFound
	}
	out := *i
	return &out, nil
}

func (r *stubInteractionRepo) List(_ context.Context, _ ports.ListInteractionsFilter) ([]*domain.Interaction, int64, error) {
	out := make([]*domain.Interaction, 0, len(r.interactions))
	for _, i := range r.interactions {
		clone := *i
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubInteractionRepo) Update(_ context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	if _, ok := r.interactions[i.ID]; !ok {
		return nil, domain.ErrInteractionNotFound
	}
	clone := *i
	r.interactions[i.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubInteractionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.interactions[id]; !ok {
		return domain.ErrInteractionNotFound
	}
	delete(r.interactions, id)
	for k := range r.participants {
		if k.interactionID == id {
			delete(r.participants, k)
		}
	}
	return nil
}

func (r *stubInteractionRepo) AddParticipant(_ context.Context, p *domain.Participant) error {
	r.participants[participantKey{p.InteractionID, p.UserID}] = p.RoleInInteraction
	return nil
}

func (r *stubInteractionRepo) IsParticipant(_ context.Context, interactionID, userID int64) (bool, error) {
	_, ok := r.participants[participantKey{interactionID, userID}]
	return ok, nil
}

func newInteractionService(repo *stubInteractionRepo) *InteractionService {
	return NewInteractionService(repo, zerolog.Nop())
}

func TestInteractionService_Create_DefaultsAndCreatorParticipant(t *testing.T) {
	repo := newStubInteractionRepo()
	svc := newInteractionService(repo)

	created, err := svc.Create(context.Background(), 7, ports.InteractionInput{
		Title:     "Follow-up call",
		ContactID: 3,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Type != domain.InteractionCall || created.Priority != domain.PriorityMedium || created.Status != domain.StatusScheduled {
		t.Fatalf("unexpected defaults: %+v", created)
	}
	if created.CreatedBy != 7 {
		t.Fatalf("expected creator 7, got %d", created.CreatedBy)
	}

	role, ok := repo.participants[participantKey{created.ID, 7}]
	if !ok || role != "creator" {
		t.Fatalf("expected creator registered as participant, got %q/%v", role, ok)
	}
}

func TestInteractionService_Create_Validation(t *testing.T) {
	svc := newInteractionService(newStubInteractionRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		input ports.InteractionInput
		want  string
	}{
		{"missing title", ports.InteractionInput{ContactID: 1}, "Title is required"},
		{"missing contact", ports.InteractionInput{Title: "x"}, "Contact is required"},
		{"bad type", ports.InteractionInput{Title: "x", ContactID: 1, Type: "fax"}, "Invalid type"},
		{"bad priority", ports.InteractionInput{Title: "x", ContactID: 1, Priority: "urgent"}, "Invalid priority"},
		{"bad status", ports.InteractionInput{Title: "x", ContactID: 1, Status: "done"}, "Invalid status"},
		{"bad time", ports.InteractionInput{Title: "x", ContactID: 1, ScheduledAt: "yesterday"}, "Invalid scheduled_at"},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, 1, tc.input)
		var ve *domain.ValidationError
		if !asValidation(err, &ve) || ve.Message != tc.want {
			t.Fatalf("%s: expected %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestInteractionService_Create_NegativeDuration(t *testing.T) {
	svc := newInteractionService(newStubInteractionRepo())
	minus := -5

	_, err := svc.Create(context.Background(), 1, ports.InteractionInput{
		Title:       "x",
		ContactID:   1,
		DurationMin: &minus,
	})
	var ve *domain.ValidationError
	if !asValidation(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestInteractionService_Delete_CreatorOnly(t *testing.T) {
	repo := newStubInteractionRepo()
	svc := newInteractionService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 7, ports.InteractionInput{Title: "x", ContactID: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, 8); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-creator, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID, 7); err != nil {
		t.Fatalf("creator delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != domain.ErrInteractionNotFound {
		t.Fatalf("expected interaction gone, got %v", err)
	}
}

func TestInteractionService_Delete_NotFound(t *testing.T) {
	svc := newInteractionService(newStubInteractionRepo())

	if err := svc.Delete(context.Background(), 42, 7); err != domain.ErrInteractionNotFound {
		t.Fatalf("expected ErrInteractionNotFound, got %v", err)
	}
}

func TestInteractionService_AddParticipant(t *testing.T) {
	repo := newStubInteractionRepo()
	svc := newInteractionService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 7, ports.InteractionInput{Title: "x", ContactID: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = svc.AddParticipant(ctx, ports.AddParticipantInput{
		InteractionID:     created.ID,
		UserID:            9,
		RoleInInteraction: "observer",
	})
	if err != nil {
		t.Fatalf("add participant failed: %v", err)
	}
	if role := repo.participants[participantKey{created.ID, 9}]; role != "observer" {
		t.Fatalf("expected observer role, got %q", role)
	}

	err = svc.AddParticipant(ctx, ports.AddParticipantInput{InteractionID: 404, UserID: 9})
	if err != domain.ErrInteractionNotFound {
		t.Fatalf("expected ErrInteractionNotFound, got %v", err)
	}

	err = svc.AddParticipant(ctx, ports.AddParticipantInput{InteractionID: created.ID})
	var ve *domain.ValidationError
	if !asValidation(err, &ve) {
		t.Fatalf("expected validation error for missing user, got %v", err)
	}
}
