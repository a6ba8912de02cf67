package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bzain/chatter/internal/models"
	"github.com/bzain/chatter/internal/store"
)

// CreateChat inserts a chat row and appends its ID to every named user's
// chat list in a single transaction. Either the chat exists fully linked or
// not at all; an unknown username rolls the whole creation back.
func (s *SQLStore) CreateChat(ctx context.Context, contents []models.Message, usernames ...string) (int64, error) {
	if contents == nil {
		contents = []models.Message{}
	}
	raw, err := json.Marshal(contents)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "INSERT INTO chats (contents) VALUES (?)", string(raw))
	if err != nil {
		return 0, err
	}
	chatID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, username := range usernames {
		if err := appendChatID(ctx, tx, chatID, username); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return chatID, nil
}

// appendChatID grows the user's JSON chat list in one UPDATE, so two
// concurrent chat creations against the same user cannot lose each other's
// link.
func appendChatID(ctx context.Context, tx *sqlx.Tx, chatID int64, username string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET chats = json_insert(COALESCE(chats, '[]'), '$[#]', ?) WHERE username = ?",
		chatID, username)
	if err != nil {
		return fmt.Errorf("link chat to %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("link chat to %q: %w", username, store.ErrNotFound)
	}
	return nil
}

func (s *SQLStore) GetChatMessages(ctx context.Context, chatID int64) ([]models.Message, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, "SELECT contents FROM chats WHERE id = ?", chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return decodeContents(chatID, raw)
}

// GetChats fetches several chats in one batched query.
func (s *SQLStore) GetChats(ctx context.Context, ids []int64) ([]models.Chat, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT id, contents FROM chats WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		msgs, err := decodeContents(id, raw)
		if err != nil {
			return nil, err
		}
		chats = append(chats, models.Chat{ID: id, Messages: msgs})
	}
	return chats, rows.Err()
}

// AppendMessage adds msg to the chat's contents array in a single UPDATE.
func (s *SQLStore) AppendMessage(ctx context.Context, chatID int64, msg models.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE chats SET contents = json_insert(contents, '$[#]', json(?)) WHERE id = ?",
		string(raw), chatID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func decodeContents(chatID int64, raw string) ([]models.Message, error) {
	var msgs []models.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, fmt.Errorf("chat %d contents: %w", chatID, store.ErrCorruptData)
	}
	return msgs, nil
}
