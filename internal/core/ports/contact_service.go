package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// ContactInput carries the client-supplied contact fields. Empty strings mean
// "not provided" on update; the service trims and clamps every field.
type ContactInput struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Company       string
	Address       string
	Status        string
	Notes         string
	LastContactAt string // RFC 3339 or empty
}

// ListContactsInput carries pagination and search parameters.
type ListContactsInput struct {
	Search   string
	Page     int
	PageSize int
}

// ListContactsResult is the paginated list envelope.
type ListContactsResult struct {
	Items    []*domain.Contact
	Total    int64
	Page     int
	PageSize int
}

// ContactService defines use-case operations for contacts.
type ContactService interface {
	Create(ctx context.Context, input ContactInput) (*domain.Contact, error)
	Get(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context, input ListContactsInput) (*ListContactsResult, error)
	Update(ctx context.Context, id int64, input ContactInput) (*domain.Contact, error)
	// Delete removes a contact. Admin-only; the role gate lives in the
	// route middleware so the token is the sole authorization signal.
	Delete(ctx context.Context, id int64) error
	RecentInteractions(ctx context.Context, contactID int64, limit int) ([]*domain.Interaction, error)
}
