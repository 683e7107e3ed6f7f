package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keyfold/keyfold-core/internal/core/domain"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "valid bearer", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "no token", header: "Bearer", want: ""},
		{name: "extra whitespace", header: "Bearer   abc123", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authService := &mockAuthService{
		validateTokenFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
			if token == "good-token" {
				return &domain.AuthContext{Username: "alice"}, nil
			}
			return nil, domain.ErrTokenInvalid
		},
	}
	middleware := NewAuthMiddleware(authService)

	var gotAuthCtx *domain.AuthContext
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthCtx = GetAuthContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "missing token", header: "", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad-token", wantStatus: http.StatusForbidden},
		{name: "wrong scheme", header: "Basic good-token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAuthCtx = nil

			req := httptest.NewRequest("GET", "/api/v1/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}

			if tt.wantStatus == http.StatusOK {
				if gotAuthCtx == nil || gotAuthCtx.Username != "alice" {
					t.Errorf("expected auth context with username 'alice', got %+v", gotAuthCtx)
				}
			} else if gotAuthCtx != nil {
				t.Error("handler should not run for rejected requests")
			}
		})
	}
}

func TestGetAuthContext_Missing(t *testing.T) {
	if GetAuthContext(context.Background()) != nil {
		t.Error("expected nil auth context for bare context")
	}
	if GetAuthContext(nil) != nil {
		t.Error("expected nil auth context for nil context")
	}
}

func TestCORSMiddleware(t *testing.T) {
	middleware := NewCORSMiddleware([]string{"*"})
	handler := middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin to be allowed, got %q", got)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	middleware := NewCORSMiddleware([]string{"*"})
	handler := middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rr.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	middleware := NewRecoveryMiddleware()
	handler := middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}
