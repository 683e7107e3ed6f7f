package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserToSummary(t *testing.T) {
	user := &User{
		Username:     "alice",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Email:        "a@x.com",
		Mobile:       5551234,
		CreatedAt:    time.Now(),
	}

	summary := user.ToSummary()

	if summary.Username != "alice" {
		t.Errorf("expected username 'alice', got %s", summary.Username)
	}
	if summary.Email != "a@x.com" {
		t.Errorf("expected email 'a@x.com', got %s", summary.Email)
	}
	if summary.Mobile != 5551234 {
		t.Errorf("expected mobile 5551234, got %d", summary.Mobile)
	}
}

func TestUserJSONNeverContainsPasswordHash(t *testing.T) {
	user := &User{
		Username:     "alice",
		PasswordHash: "super-secret-hash",
		Email:        "a@x.com",
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("failed to marshal user: %v", err)
	}

	if strings.Contains(string(data), "super-secret-hash") {
		t.Errorf("serialized user contains password hash: %s", data)
	}
}
