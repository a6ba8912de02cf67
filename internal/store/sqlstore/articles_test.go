package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/bzain/chatter/internal/store"
)

func TestCreateAndGetArticle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateArticle(ctx, "Some knowledge", "en", "alice")
	if err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}

	article, err := s.GetArticle(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get article: %v", err)
	}
	if article.Contents != "Some knowledge" || article.Language != "en" || article.Author != "alice" {
		t.Errorf("Unexpected article: %+v", article)
	}

	_, err = s.GetArticle(ctx, 9999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteArticle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, _ := s.CreateArticle(ctx, "Delete me", "en", "alice")

	if err := s.DeleteArticle(ctx, id); err != nil {
		t.Errorf("Failed to delete article: %v", err)
	}

	if _, err := s.GetArticle(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	if err := s.DeleteArticle(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for second delete, got %v", err)
	}
}

func TestListArticles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.CreateArticle(ctx, "One", "en", "alice")
	s.CreateArticle(ctx, "Two", "de", "bob")
	s.CreateArticle(ctx, "Three", "en", "alice")

	all, err := s.ListArticles(ctx, "")
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 articles, got %d", len(all))
	}

	mine, err := s.ListArticles(ctx, "alice")
	if err != nil {
		t.Fatalf("ListArticles(alice) failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("Expected 2 articles for alice, got %d", len(mine))
	}
}
