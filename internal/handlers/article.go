package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bzain/chatter/internal/middleware"
	"github.com/bzain/chatter/internal/models"
	"github.com/bzain/chatter/internal/store"
)

type ArticleHandler struct {
	Store  store.Store
	Logger zerolog.Logger
}

// Create stores a knowledge-base article authored by the caller.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.Username(ctx)
	q := r.URL.Query()
	contents, language := q.Get("contents"), q.Get("language")

	if contents == "" || language == "" {
		respondErr(w, http.StatusBadRequest, "missing required parameters")
		return
	}

	id, err := h.Store.CreateArticle(ctx, contents, language, username)
	if err != nil {
		h.Logger.Error().Err(err).Msg("createarticle: insert failed")
		respondErr(w, http.StatusInternalServerError, "failed to create article")
		return
	}

	respond(w, http.StatusCreated, map[string]int64{"articleId": id})
}

// Delete removes an article; only its author may.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.Username(ctx)

	rawID := r.URL.Query().Get("articleId")
	if rawID == "" {
		respondErr(w, http.StatusBadRequest, "missing required parameters")
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := h.Store.GetArticle(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "article not found")
			return
		}
		h.Logger.Error().Err(err).Msg("deletearticle: lookup failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if article.Author != username {
		respondErr(w, http.StatusForbidden, "not your article")
		return
	}

	if err := h.Store.DeleteArticle(ctx, id); err != nil {
		h.Logger.Error().Err(err).Msg("deletearticle: delete failed")
		respondErr(w, http.StatusInternalServerError, "delete failed")
		return
	}

	respond(w, http.StatusOK, map[string]string{"message": "Article deleted"})
}

// GetAll lists every article, or only the caller's with mine=true.
func (h *ArticleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	author := ""
	if r.URL.Query().Get("mine") != "" {
		author = middleware.Username(ctx)
	}

	articles, err := h.Store.ListArticles(ctx, author)
	if err != nil {
		h.Logger.Error().Err(err).Msg("getallarticles: list failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}

	respond(w, http.StatusOK, articles)
}

// GetTranslated returns an article's contents "translated" to the target
// language. There is no real translation backend; differing languages get
// a tagged passthrough.
func (h *ArticleHandler) GetTranslated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	rawID, target := q.Get("articleId"), q.Get("target")

	if rawID == "" || target == "" {
		respondErr(w, http.StatusBadRequest, "missing required parameters")
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := h.Store.GetArticle(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "article not found")
			return
		}
		h.Logger.Error().Err(err).Msg("gettranslatedarticle: lookup failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	translated := article.Contents
	if article.Language != target {
		translated = fmt.Sprintf("[%s→%s] %s", article.Language, target, article.Contents)
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"articleId":        id,
		"originalLanguage": article.Language,
		"targetLanguage":   target,
		"contents":         translated,
	})
}
