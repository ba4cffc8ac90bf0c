package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	// FindByEmail returns the user with the given email, roles included.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts the user and assigns defaultRole atomically. A crash
	// must never leave a user without a role, so both statements run in one
	// transaction. Returns the persisted user with roles populated.
	Create(ctx context.Context, user *domain.User, defaultRole string) (*domain.User, error)
	// ListUsers returns up to limit users, newest first, without roles.
	ListUsers(ctx context.Context, limit int) ([]*domain.User, error)
}
