package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/keyfold/keyfold-core/internal/core/domain"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// uniqueViolation is the postgres error code for unique constraint violations
const uniqueViolation = "23505"

// UserStore implements driven.UserStore using PostgreSQL.
// The users table enforces uniqueness of username, so a lost
// check-then-insert race still yields exactly one record.
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Insert persists a new credential record
func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, mobile, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Mobile,
		user.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return domain.ErrUserExists
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// GetByUsername retrieves a record by exact username match
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT username, password_hash, email, mobile, created_at
		FROM users
		WHERE username = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Mobile,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &user, nil
}

// List retrieves every stored record
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT username, password_hash, email, mobile, created_at
		FROM users
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.Username,
			&user.PasswordHash,
			&user.Email,
			&user.Mobile,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return users, nil
}
