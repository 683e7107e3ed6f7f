package services

import (
	"context"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
	"github.com/keyfold/keyfold-core/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore driven.UserStore
}

// NewUserService creates a new UserService
func NewUserService(userStore driven.UserStore) driving.UserService {
	return &userService{userStore: userStore}
}

// List retrieves all registered users
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// GetByUsername retrieves a user by username
func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}
