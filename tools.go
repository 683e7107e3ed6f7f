//go:build tools

// Package tools pins build-time tool dependencies.
// Run `go generate ./...` or `swag init -g cmd/keyfold-core/main.go`
// to regenerate API documentation.
package tools

import (
	_ "github.com/swaggo/swag"
)
