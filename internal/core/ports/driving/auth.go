package driving

import (
	"context"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

// AuthService handles credential registration and authentication
type AuthService interface {
	// Register creates a new credential record with a hashed password
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)

	// Login validates credentials and issues a signed bearer token
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken verifies a bearer token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
