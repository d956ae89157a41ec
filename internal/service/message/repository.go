package message

import (
	"context"

	"github.com/ignite/social-api/internal/domain"
)

// Repository defines the data access contract for messages.
type Repository interface {
	// GetByID returns nil, nil when no message has the id.
	GetByID(ctx context.Context, id int) (*domain.Message, error)
	GetAll(ctx context.Context) ([]domain.Message, error)
	FindByPostedBy(ctx context.Context, accountID int) ([]domain.Message, error)
	Insert(ctx context.Context, m domain.Message) (*domain.Message, error)
	Update(ctx context.Context, m domain.Message) (bool, error)
	Delete(ctx context.Context, m domain.Message) (bool, error)
}
