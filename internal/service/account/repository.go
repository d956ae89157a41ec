package account

import (
	"context"

	"github.com/ignite/social-api/internal/domain"
)

// Repository defines the data access contract for accounts.
type Repository interface {
	// GetByID returns nil, nil when no account has the id.
	GetByID(ctx context.Context, id int) (*domain.Account, error)

	// FindByUsername returns nil, nil when the username is unknown.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)

	UsernameExists(ctx context.Context, username string) (bool, error)

	GetAll(ctx context.Context) ([]domain.Account, error)

	// Insert stores a new account and returns it with the assigned id.
	Insert(ctx context.Context, a domain.Account) (*domain.Account, error)

	// Update and Delete report whether a row was affected.
	Update(ctx context.Context, a domain.Account) (bool, error)
	Delete(ctx context.Context, a domain.Account) (bool, error)
}
