package mocks

import (
	"context"
	"sync"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
)

// Ensure MockUserStore implements UserStore
var _ driven.UserStore = (*MockUserStore)(nil)

// MockUserStore is a mock implementation of UserStore for testing
type MockUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string

	// FailWith forces every operation to return this error when set
	FailWith error
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserStore) Insert(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.users[user.Username]; ok {
		return domain.ErrUserExists
	}
	m.users[user.Username] = user
	m.order = append(m.order, user.Username)
	return nil
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	user, ok := m.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	result := make([]*domain.User, 0, len(m.order))
	for _, username := range m.order {
		result = append(result, m.users[username])
	}
	return result, nil
}
