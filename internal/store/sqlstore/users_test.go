package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/bzain/chatter/internal/store"
)

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.CreateUser(ctx, "testuser", "test@example.com", "hashed", "12345")
	if err != nil {
		t.Errorf("Failed to create user: %v", err)
	}

	// Test duplicate user
	err = s.CreateUser(ctx, "testuser", "other@example.com", "hashed", "67890")
	if err == nil {
		t.Error("Expected error when creating duplicate user, got nil")
	}
}

func TestGetUserByUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.CreateUser(ctx, "testuser", "test@example.com", "hashed", "12345")

	user, err := s.GetUserByUsername(ctx, "testuser")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}

	if user.Username != "testuser" {
		t.Errorf("Expected username 'testuser', got '%s'", user.Username)
	}
	if user.Email != "test@example.com" {
		t.Errorf("Expected email 'test@example.com', got '%s'", user.Email)
	}

	_, err = s.GetUserByUsername(ctx, "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for nonexistent user, got %v", err)
	}
}

func TestUserChatIDsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.CreateUser(ctx, "testuser", "test@example.com", "hashed", "12345")

	ids, err := s.UserChatIDs(ctx, "testuser")
	if err != nil {
		t.Errorf("UserChatIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no chat IDs, got %v", ids)
	}

	_, err = s.UserChatIDs(ctx, "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserChatIDsCorrupt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.CreateUser(ctx, "testuser", "test@example.com", "hashed", "12345")
	s.db.MustExec("UPDATE users SET chats = 'not json' WHERE username = 'testuser'")

	_, err := s.UserChatIDs(ctx, "testuser")
	if !errors.Is(err, store.ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData, got %v", err)
	}
}
