package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bzain/chatter/internal/models"
	"github.com/bzain/chatter/internal/store"
)

func (s *SQLStore) CreateUser(ctx context.Context, username, email, passwordHash, phone string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password, phone) VALUES (?, ?, ?, ?)",
		username, email, passwordHash, phone)
	return err
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		"SELECT id, username, email, password, COALESCE(chats, '') AS chats, phone FROM users WHERE username = ?",
		username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UserChatIDs returns the user's chat-ID list decoded from its JSON column.
// An absent or null column means no chats; anything undecodable is
// ErrCorruptData.
func (s *SQLStore) UserChatIDs(ctx context.Context, username string) ([]int64, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw,
		"SELECT COALESCE(chats, '') FROM users WHERE username = ?", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if raw == "" || raw == "null" {
		return nil, nil
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("chat list for %q: %w", username, store.ErrCorruptData)
	}
	return ids, nil
}
