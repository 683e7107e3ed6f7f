package driving

import (
	"context"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// UserService provides read access to registered users
type UserService interface {
	// List retrieves all registered users
	List(ctx context.Context) ([]*domain.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
