package services

import (
	"context"
	"errors"
	"time"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
	"github.com/keyfold/keyfold-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	userStore   driven.UserStore
	authAdapter driven.AuthAdapter
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore driven.UserStore,
	authAdapter driven.AuthAdapter,
) driving.AuthService {
	return &authService{
		userStore:   userStore,
		authAdapter: authAdapter,
		tokenTTL:    30 * 24 * time.Hour,
	}
}

// Register creates a new credential record with a hashed password.
//
// The duplicate check and the insert are two separate store calls. Two
// concurrent registrations for the same username can both observe "absent"
// here; the store backends close that window themselves (unique constraint
// in postgres, SETNX in redis) and surface domain.ErrUserExists.
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	// Validate input
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Check if username already exists
	_, err := s.userStore.GetByUsername(ctx, req.Username)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	// Hash password
	passwordHash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Email:        req.Email,
		Mobile:       req.Mobile,
		CreatedAt:    time.Now(),
	}

	if err := s.userStore.Insert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login validates credentials and issues a signed bearer token
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	// Validate input
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Get user by username
	user, err := s.userStore.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	// Verify password
	if !s.authAdapter.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &domain.TokenClaims{
		Username:  user.Username,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToSummary(),
	}, nil
}

// ValidateToken verifies a bearer token and returns the auth context.
// Pure computation - no store access.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	// Expired and malformed tokens are indistinguishable to the caller
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		Username: claims.Username,
	}, nil
}
