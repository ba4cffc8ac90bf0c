package ports

import (
	"context"
	"time"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// ListContactsFilter carries the query parameters for listing contacts.
type ListContactsFilter struct {
	Search   string // optional: substring match on first_name, last_name, email, company
	Page     int    // 1-based
	PageSize int    // rows per page (clamped by the service)
}

// ContactPatch carries a partial update; nil fields are left untouched.
type ContactPatch struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	Company       *string
	Address       *string
	Status        *domain.ContactStatus
	Notes         *string
	LastContactAt *time.Time
}

// Empty reports whether the patch changes nothing.
func (p ContactPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.Company == nil && p.Address == nil &&
		p.Status == nil && p.Notes == nil && p.LastContactAt == nil
}

// ContactRepository defines persistence operations for contacts.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	FindByID(ctx context.Context, id int64) (*domain.Contact, error)
	// List returns a page of contacts matching filter and the total count.
	List(ctx context.Context, filter ListContactsFilter) ([]*domain.Contact, int64, error)
	// Update applies the patch and returns the persisted row.
	Update(ctx context.Context, id int64, patch ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, id int64) error
	// RecentInteractions returns the latest interactions for a contact.
	RecentInteractions(ctx context.Context, contactID int64, limit int) ([]*domain.Interaction, error)
}
