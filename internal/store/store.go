package store

import (
	"context"
	"errors"

	"github.com/bzain/chatter/internal/models"
)

var (
	// ErrNotFound is returned when a row the caller asked for does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorruptData is returned when a JSON-encoded column fails to decode.
	// Decode failures are hard errors, not silently emptied lists.
	ErrCorruptData = errors.New("corrupt stored data")
)

type Store interface {
	// User operations
	CreateUser(ctx context.Context, username, email, passwordHash, phone string) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UserChatIDs(ctx context.Context, username string) ([]int64, error)

	// Chat operations
	CreateChat(ctx context.Context, contents []models.Message, usernames ...string) (int64, error)
	GetChatMessages(ctx context.Context, chatID int64) ([]models.Message, error)
	GetChats(ctx context.Context, ids []int64) ([]models.Chat, error)
	AppendMessage(ctx context.Context, chatID int64, msg models.Message) error

	// Article operations
	CreateArticle(ctx context.Context, contents, language, author string) (int64, error)
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
	ListArticles(ctx context.Context, author string) ([]models.Article, error)

	Ping(ctx context.Context) error
	Close() error
}
