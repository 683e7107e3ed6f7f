package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven/mocks"
)

func newTestAuthService() (*mocks.MockUserStore, *mocks.MockAuthAdapter, *authService) {
	userStore := mocks.NewMockUserStore()
	authAdapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(userStore, authAdapter).(*authService)
	return userStore, authAdapter, svc
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		existing *domain.User
		req      domain.RegisterRequest
		wantErr  error
	}{
		{
			name: "new user",
			req: domain.RegisterRequest{
				Username: "alice",
				Password: "s3cret",
				Email:    "a@x.com",
				Mobile:   5551234,
			},
			wantErr: nil,
		},
		{
			name:     "duplicate username",
			existing: &domain.User{Username: "alice", PasswordHash: "s3cret"},
			req: domain.RegisterRequest{
				Username: "alice",
				Password: "other",
			},
			wantErr: domain.ErrUserExists,
		},
		{
			name:    "empty username",
			req:     domain.RegisterRequest{Password: "s3cret"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty password",
			req:     domain.RegisterRequest{Username: "alice"},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore, _, svc := newTestAuthService()
			if tt.existing != nil {
				_ = userStore.Insert(context.Background(), tt.existing)
			}

			user, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Username != tt.req.Username {
				t.Errorf("expected username %s, got %s", tt.req.Username, user.Username)
			}

			stored, err := userStore.GetByUsername(context.Background(), tt.req.Username)
			if err != nil {
				t.Fatalf("expected record to be persisted: %v", err)
			}
			if stored.Email != tt.req.Email {
				t.Errorf("expected email %s, got %s", tt.req.Email, stored.Email)
			}
		})
	}
}

func TestAuthService_Register_StoreUnavailable(t *testing.T) {
	userStore, _, svc := newTestAuthService()
	userStore.FailWith = domain.ErrStoreUnavailable

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Password: "s3cret",
	})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestAuthService_Register_DuplicateLeavesOneRecord(t *testing.T) {
	userStore, _, svc := newTestAuthService()

	req := domain.RegisterRequest{Username: "alice", Password: "s3cret"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	users, _ := userStore.List(context.Background())
	if len(users) != 1 {
		t.Errorf("expected exactly one record, got %d", len(users))
	}
}

func TestAuthService_Login(t *testing.T) {
	userStore, _, svc := newTestAuthService()

	// Mock hasher uses plain text comparison
	user := &domain.User{
		Username:     "alice",
		PasswordHash: "s3cret",
		Email:        "a@x.com",
		CreatedAt:    time.Now(),
	}
	_ = userStore.Insert(context.Background(), user)

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{
			name:    "valid credentials",
			req:     domain.LoginRequest{Username: "alice", Password: "s3cret"},
			wantErr: nil,
		},
		{
			name:    "wrong password",
			req:     domain.LoginRequest{Username: "alice", Password: "wrong"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unknown user",
			req:     domain.LoginRequest{Username: "bob", Password: "s3cret"},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name:    "empty password",
			req:     domain.LoginRequest{Username: "alice"},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected non-empty token")
			}
			if resp.User.Username != "alice" {
				t.Errorf("expected username 'alice', got %s", resp.User.Username)
			}
			if !resp.ExpiresAt.After(time.Now().Add(29 * 24 * time.Hour)) {
				t.Error("expected expiry roughly 30 days out")
			}
		})
	}
}

func TestAuthService_LoginThenValidate(t *testing.T) {
	userStore, _, svc := newTestAuthService()
	_ = userStore.Insert(context.Background(), &domain.User{
		Username:     "alice",
		PasswordHash: "s3cret",
	})

	resp, err := svc.Login(context.Background(), domain.LoginRequest{
		Username: "alice",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	authCtx, err := svc.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if authCtx.Username != "alice" {
		t.Errorf("expected username claim 'alice', got %s", authCtx.Username)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	_, authAdapter, svc := newTestAuthService()

	expired, _ := authAdapter.GenerateToken(&domain.TokenClaims{
		Username:  "alice",
		IssuedAt:  time.Now().Add(-31 * 24 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-1 * time.Hour).Unix(),
	})

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "empty token",
			token:   "",
			wantErr: domain.ErrTokenInvalid,
		},
		{
			name:    "malformed token",
			token:   "not-a-token",
			wantErr: domain.ErrTokenInvalid,
		},
		{
			name:    "expired token",
			token:   expired,
			wantErr: domain.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(context.Background(), tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
