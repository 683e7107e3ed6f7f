package domain

import "time"

// User represents a registered credential record.
// Username is the unique identifier; matching is exact and case-sensitive.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize
	Email        string    `json:"email"`
	Mobile       int64     `json:"mobile"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary provides a safe view of user data (no password hash)
type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   int64  `json:"mobile"`
}

// ToSummary converts a User to UserSummary
func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		Username: u.Username,
		Email:    u.Email,
		Mobile:   u.Mobile,
	}
}
