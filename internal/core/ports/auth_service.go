package ports

import (
	"context"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// AuthService implements registration, login and user listing.
type AuthService interface {
	// Register creates a user with the default role and returns it together
	// with a signed bearer token.
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	// Login verifies credentials and returns the user and a signed token.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// ListUsers returns the most recent users (admin operation).
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
