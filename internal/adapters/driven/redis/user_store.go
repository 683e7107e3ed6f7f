package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

const (
	// Key prefixes for Redis
	userPrefix   = "user:"
	userIndexKey = "users"
)

// UserStore implements driven.UserStore using Redis as a document store.
// Each record is a JSON document keyed by username; an index set tracks
// all usernames for listing. Records never expire.
type UserStore struct {
	client *redis.Client
}

// NewUserStore creates a new Redis-backed UserStore
func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

// Insert persists a new credential record.
// SETNX on the username key makes the insert atomic, so a lost
// check-then-insert race surfaces as domain.ErrUserExists.
func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(userDocument(user))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	set, err := s.client.SetNX(ctx, userPrefix+user.Username, data, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !set {
		return domain.ErrUserExists
	}

	if err := s.client.SAdd(ctx, userIndexKey, user.Username).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return nil
}

// GetByUsername retrieves a record by exact username match
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	data, err := s.client.Get(ctx, userPrefix+username).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return unmarshalUser(data)
}

// List retrieves every stored record
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	usernames, err := s.client.SMembers(ctx, userIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if len(usernames) == 0 {
		return nil, nil
	}

	keys := make([]string, len(usernames))
	for i, username := range usernames {
		keys[i] = userPrefix + username
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var users []*domain.User
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a document - skip
			continue
		}
		user, err := unmarshalUser([]byte(raw))
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// document is the stored JSON shape. PasswordHash is excluded from the
// domain type's JSON form, so persistence uses its own mapping.
type document struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
	Mobile       int64  `json:"mobile"`
	CreatedAt    int64  `json:"created_at"`
}

func userDocument(user *domain.User) document {
	return document{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Email:        user.Email,
		Mobile:       user.Mobile,
		CreatedAt:    user.CreatedAt.Unix(),
	}
}

func unmarshalUser(data []byte) (*domain.User, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &domain.User{
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		Email:        doc.Email,
		Mobile:       doc.Mobile,
		CreatedAt:    time.Unix(doc.CreatedAt, 0),
	}, nil
}
