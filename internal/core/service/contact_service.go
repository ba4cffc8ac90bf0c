package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

// Column maxima mirrored from the contacts table.
const (
	maxNameLen    = 120
	maxEmailLen   = 180
	maxPhoneLen   = 60
	maxCompanyLen = 180
	maxAddressLen = 255
	maxNotesLen   = 5000
)

// ContactService implements contact CRUD and search.
type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

func (s *ContactService) Create(ctx context.Context, input ports.ContactInput) (*domain.Contact, error) {
	c, err := contactFromInput(input)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("contact_id", created.ID).Msg("contact created")
	return created, nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ContactService) List(ctx context.Context, input ports.ListContactsInput) (*ports.ListContactsResult, error) {
	page, pageSize := clampPage(input.Page, input.PageSize)

	items, total, err := s.repo.List(ctx, ports.ListContactsFilter{
		Search:   cleanStr(input.Search, maxNameLen),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListContactsResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *ContactService) Update(ctx context.Context, id int64, input ports.ContactInput) (*domain.Contact, error) {
	patch, err := patchFromInput(input)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("contact_id", id).Msg("contact deleted")
	return nil
}

func (s *ContactService) RecentInteractions(ctx context.Context, contactID int64, limit int) ([]*domain.Interaction, error) {
	if limit < 1 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}
	return s.repo.RecentInteractions(ctx, contactID, limit)
}

// contactFromInput sanitizes and validates a full contact payload.
func contactFromInput(input ports.ContactInput) (*domain.Contact, error) {
	status := domain.ContactStatus(cleanStr(input.Status, 32))
	if status == "" {
		status = domain.ContactProspect
	}
	if !status.IsValid() {
		return nil, domain.Invalid("Invalid status")
	}

	email := normalizeEmail(cleanStr(input.Email, maxEmailLen))
	if email != "" && !validEmail(email) {
		return nil, domain.Invalid("Invalid email format")
	}

	lastContact, ok := parseTimeOrNil(input.LastContactAt)
	if !ok {
		return nil, domain.Invalid("Invalid last_contact_at")
	}

	return &domain.Contact{
		FirstName:     cleanStr(input.FirstName, maxNameLen),
		LastName:      cleanStr(input.LastName, maxNameLen),
		Email:         email,
		Phone:         cleanStr(input.Phone, maxPhoneLen),
		Company:       cleanStr(input.Company, maxCompanyLen),
		Address:       cleanStr(input.Address, maxAddressLen),
		Status:        status,
		Notes:         sanitizeText(input.Notes, maxNotesLen),
		LastContactAt: lastContact,
	}, nil
}

// patchFromInput builds a partial update from the provided fields only.
// An empty string means "not provided"; a field cannot be cleared through
// the API (last-write-wins applies to the fields that are present).
func patchFromInput(input ports.ContactInput) (ports.ContactPatch, error) {
	var patch ports.ContactPatch

	setStr := func(dst **string, v string, max int) {
		if v != "" {
			s := cleanStr(v, max)
			*dst = &s
		}
	}
	setStr(&patch.FirstName, input.FirstName, maxNameLen)
	setStr(&patch.LastName, input.LastName, maxNameLen)
	setStr(&patch.Phone, input.Phone, maxPhoneLen)
	setStr(&patch.Company, input.Company, maxCompanyLen)
	setStr(&patch.Address, input.Address, maxAddressLen)

	if input.Email != "" {
		email := normalizeEmail(cleanStr(input.Email, maxEmailLen))
		if !validEmail(email) {
			return patch, domain.Invalid("Invalid email format")
		}
		patch.Email = &email
	}
	if input.Status != "" {
		status := domain.ContactStatus(cleanStr(input.Status, 32))
		if !status.IsValid() {
			return patch, domain.Invalid("Invalid status")
		}
		patch.Status = &status
	}
	if input.Notes != "" {
		notes := sanitizeText(input.Notes, maxNotesLen)
		patch.Notes = &notes
	}
	if input.LastContactAt != "" {
		t, ok := parseTimeOrNil(input.LastContactAt)
		if !ok {
			return patch, domain.Invalid("Invalid last_contact_at")
		}
		patch.LastContactAt = t
	}

	return patch, nil
}
