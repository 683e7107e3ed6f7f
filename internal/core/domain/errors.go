package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrUserExists indicates the username is already registered
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound indicates no record exists for the username
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a wrong username/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid indicates the bearer token is missing, malformed,
	// expired or signed with the wrong secret
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the credential store could not be reached
	ErrStoreUnavailable = errors.New("store unavailable")
)
