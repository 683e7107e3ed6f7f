package driven

import (
	"context"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// UserStore handles credential record persistence.
// Implementations return domain.ErrUserNotFound for absent usernames and
// domain.ErrUserExists when an insert collides with an existing record.
// Connectivity failures wrap domain.ErrStoreUnavailable.
type UserStore interface {
	// Insert persists a new credential record
	Insert(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a record by exact username match
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List retrieves every stored record in store-defined order
	List(ctx context.Context) ([]*domain.User, error)
}
