package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bzain/chatter/internal/models"
	"github.com/bzain/chatter/internal/store"
)

func (s *SQLStore) CreateArticle(ctx context.Context, contents, language, author string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO articles (contents, language, author) VALUES (?, ?, ?)",
		contents, language, author)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLStore) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	var article models.Article
	err := s.db.GetContext(ctx, &article,
		"SELECT id, contents, language, author FROM articles WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (s *SQLStore) DeleteArticle(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
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

// ListArticles returns every article, or only author's when author is
// non-empty.
func (s *SQLStore) ListArticles(ctx context.Context, author string) ([]models.Article, error) {
	var (
		articles []models.Article
		err      error
	)
	if author != "" {
		err = s.db.SelectContext(ctx, &articles,
			"SELECT id, contents, language, author FROM articles WHERE author = ?", author)
	} else {
		err = s.db.SelectContext(ctx, &articles,
			"SELECT id, contents, language, author FROM articles")
	}
	if err != nil {
		return nil, err
	}
	return articles, nil
}
