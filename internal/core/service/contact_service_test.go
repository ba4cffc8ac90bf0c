package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

type stubContactRepo struct {
	contacts    map[int64]*domain.Contact
	nextID      int64
	lastFilter  ports.ListContactsFilter
	updateCalls int
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[int64]*domain.Contact)}
}

func (r *stubContactRepo) Create(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	for _, existing := range r.contacts {
		if c.Email != "" && existing.Email == c.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	clone := *c
	clone.ID = r.nextID
	r.contacts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubContactRepo) FindByID(_ context.Context, id int64) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	out := *c
	return &out, nil
}

func (r *stubContactRepo) List(_ context.Context, filter ports.ListContactsFilter) ([]*domain.Contact, int64, error) {
	r.lastFilter = filter
	out := make([]*domain.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		clone := *c
		out = append(out, &clone)
	}
	return out, int64(len(r.contacts)), nil
}

func (r *stubContactRepo) Update(_ context.Context, id int64, patch ports.ContactPatch) (*domain.Contact, error) {
	r.updateCalls++
	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	out := *c
	return &out, nil
}

func (r *stubContactRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.contacts[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}

func (r *stubContactRepo) RecentInteractions(_ context.Context, _ int64, _ int) ([]*domain.Interaction, error) {
	return nil, nil
}

func newContactService(repo *stubContactRepo) *ContactService {
	return NewContactService(repo, zerolog.Nop())
}

func TestContactService_Create_Defaults(t *testing.T) {
	svc := newContactService(newStubContactRepo())

	contact, err := svc.Create(context.Background(), ports.ContactInput{
		FirstName: "  Jane ",
		LastName:  "Doe",
		Email:     "Jane@Example.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if contact.Status != domain.ContactProspect {
		t.Fatalf("expected default status prospect, got %s", contact.Status)
	}
	if contact.FirstName != "Jane" {
		t.Fatalf("expected trimmed name, got %q", contact.FirstName)
	}
	if contact.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", contact.Email)
	}
}

func TestContactService_Create_InvalidStatus(t *testing.T) {
	svc := newContactService(newStubContactRepo())

	_, err := svc.Create(context.Background(), ports.ContactInput{FirstName: "X", Status: "bogus"})
	var ve *domain.ValidationError
	if !asValidation(err, &ve) || ve.Message != "Invalid status" {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestContactService_Create_InvalidEmail(t *testing.T) {
	svc := newContactService(newStubContactRepo())

	_, err := svc.Create(context.Background(), ports.ContactInput{FirstName: "X", Email: "nope"})
	var ve *domain.ValidationError
	if !asValidation(err, &ve) || ve.Message != "Invalid email format" {
		t.Fatalf("expected invalid email error, got %v", err)
	}
}

func TestContactService_Create_SanitizesNotes(t *testing.T) {
	svc := newContactService(newStubContactRepo())

	contact, err := svc.Create(context.Background(), ports.ContactInput{
		FirstName: "X",
		Notes:     `<img src=x onerror=alert(1)>important lead`,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if contact.Notes != "important lead" {
		t.Fatalf("expected HTML stripped, got %q", contact.Notes)
	}
}

func TestContactService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubContactRepo()
	svc := newContactService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.ContactInput{FirstName: "A", Email: "dup@example.com"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(ctx, ports.ContactInput{FirstName: "B", Email: "dup@example.com"}); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestContactService_List_ClampsPagination(t *testing.T) {
	repo := newStubContactRepo()
	svc := newContactService(repo)

	result, err := svc.List(context.Background(), ports.ListContactsInput{Page: -3, PageSize: 5000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Page != 1 || result.PageSize != 100 {
		t.Fatalf("expected page=1 pageSize=100, got %d/%d", result.Page, result.PageSize)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.PageSize != 100 {
		t.Fatalf("repo saw unclamped filter: %+v", repo.lastFilter)
	}

	result, _ = svc.List(context.Background(), ports.ListContactsInput{})
	if result.Page != 1 || result.PageSize != 20 {
		t.Fatalf("expected defaults page=1 pageSize=20, got %d/%d", result.Page, result.PageSize)
	}
}

func TestContactService_Update_EmptyPatchIsRead(t *testing.T) {
	repo := newStubContactRepo()
	svc := newContactService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.ContactInput{FirstName: "Jane"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Update(ctx, created.ID, ports.ContactInput{})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("expected no update call for empty patch")
	}
	if got.FirstName != "Jane" {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

func TestContactService_Update_Partial(t *testing.T) {
	repo := newStubContactRepo()
	svc := newContactService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.ContactInput{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Update(ctx, created.ID, ports.ContactInput{FirstName: "Janet", Status: "active"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.FirstName != "Janet" || got.LastName != "Doe" || got.Status != domain.ContactActive {
		t.Fatalf("unexpected contact after patch: %+v", got)
	}
}

func TestContactService_Update_NotFound(t *testing.T) {
	svc := newContactService(newStubContactRepo())

	_, err := svc.Update(context.Background(), 999, ports.ContactInput{FirstName: "X"})
	if err != domain.ErrContactNotFound {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactService_RecentInteractions_ClampsLimit(t *testing.T) {
	repo := newStubContactRepo()
	svc := newContactService(repo)

	if _, err := svc.RecentInteractions(context.Background(), 1, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.RecentInteractions(context.Background(), 1, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
