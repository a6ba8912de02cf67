package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bzain/chatter/internal/metrics"
	"github.com/bzain/chatter/internal/middleware"
	"github.com/bzain/chatter/internal/models"
	"github.com/bzain/chatter/internal/store"
	"github.com/bzain/chatter/internal/ws"
)

type ChatHandler struct {
	Store  store.Store
	Hub    *ws.Hub
	Logger zerolog.Logger
}

// CreateChat starts a new chat for the caller, optionally seeded with a
// `first` message and shared with a `target` user. The chat row and both
// list links are committed together; an unknown target creates nothing.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.Username(ctx)
	q := r.URL.Query()
	first, target := q.Get("first"), q.Get("target")

	contents := []models.Message{}
	if first != "" {
		contents = append(contents, models.NewMessage(username, first))
	}

	usernames := []string{username}
	if target != "" {
		usernames = append(usernames, target)
	}

	chatID, err := h.Store.CreateChat(ctx, contents, usernames...)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "target user not found")
			return
		}
		h.Logger.Error().Err(err).Msg("createchat: failed")
		respondErr(w, http.StatusInternalServerError, "failed to create chat")
		return
	}

	metrics.ChatsCreated.Inc()
	if target != "" {
		h.Hub.Notify(target, map[string]interface{}{
			"type":   "new_chat",
			"chatId": chatID,
			"from":   username,
		})
	}

	respond(w, http.StatusCreated, map[string]interface{}{
		"chatId":   chatID,
		"messages": contents,
	})
}

// GetChat serves both retrieval variants: by targetUser (flattened legacy
// shape) and by chatId (plain message list, caller must own the chat).
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if target := q.Get("targetUser"); target != "" {
		h.getChatByTarget(w, r, target)
		return
	}
	if chatID := q.Get("chatId"); chatID != "" {
		h.getChatByID(w, r, chatID)
		return
	}
	respondErr(w, http.StatusBadRequest, "session ID and target user are required")
}

// getChatByTarget finds the first chat both users share (caller's list
// order) whose contents are readable, and flattens it into the legacy
// {"<sender>-<n>": text} map. Unreadable shared chats are skipped, not
// fatal.
func (h *ChatHandler) getChatByTarget(w http.ResponseWriter, r *http.Request, target string) {
	ctx := r.Context()
	username := middleware.Username(ctx)

	userIDs, err := h.Store.UserChatIDs(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "no chats found for user")
			return
		}
		h.Logger.Error().Err(err).Msg("getchat: caller chat list failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	targetIDs, err := h.Store.UserChatIDs(ctx, target)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "target user not found")
			return
		}
		h.Logger.Error().Err(err).Msg("getchat: target chat list failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	for _, chatID := range userIDs {
		if !slices.Contains(targetIDs, chatID) {
			continue
		}

		msgs, err := h.Store.GetChatMessages(ctx, chatID)
		if err != nil {
			// Shared chat with missing or unreadable contents: try the
			// next one.
			continue
		}

		response := map[string]interface{}{
			"chats":         len(msgs),
			"yourUsername":  username,
			"theirUsername": target,
		}
		for idx, m := range msgs {
			sender := m.Sender
			if sender == "" {
				// Legacy bare-string entry: senders alternate, the caller
				// first.
				if idx%2 == 0 {
					sender = username
				} else {
					sender = target
				}
			}
			response[fmt.Sprintf("%s-%d", sender, idx+1)] = m.Text
		}

		respond(w, http.StatusOK, response)
		return
	}

	respondErr(w, http.StatusNotFound, "chat with that user not found")
}

// getChatByID returns a chat's messages directly. The chat must appear in
// the caller's own list.
func (h *ChatHandler) getChatByID(w http.ResponseWriter, r *http.Request, rawID string) {
	ctx := r.Context()
	username := middleware.Username(ctx)

	chatID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid chat id")
		return
	}

	owned, err := h.ownsChat(ctx, username, chatID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("getchat: ownership check failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !owned {
		respondErr(w, http.StatusForbidden, "not your chat")
		return
	}

	msgs, err := h.Store.GetChatMessages(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "chat not found")
			return
		}
		h.Logger.Error().Err(err).Msg("getchat: contents fetch failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"chatId":   chatID,
		"messages": msgs,
	})
}

// PushMessage appends a plain-text message to the chat the caller shares
// with `target`. The shared chat must already exist.
func (h *ChatHandler) PushMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.Username(ctx)
	q := r.URL.Query()
	target, message := q.Get("target"), q.Get("message")

	if target == "" || message == "" {
		respondErr(w, http.StatusBadRequest, "missing required parameters")
		return
	}

	chatID, ok, err := h.sharedChat(ctx, username, target)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "target user not found")
			return
		}
		h.Logger.Error().Err(err).Msg("pushMessage: shared chat lookup failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ok {
		respondErr(w, http.StatusNotFound, "chat with that user not found")
		return
	}

	if err := h.Store.AppendMessage(ctx, chatID, models.NewMessage(username, message)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "chat record not found")
			return
		}
		h.Logger.Error().Err(err).Msg("pushMessage: append failed")
		respondErr(w, http.StatusInternalServerError, "failed to push message")
		return
	}

	metrics.MessagesPushed.Inc()
	h.Hub.Notify(target, map[string]interface{}{
		"type":   "new_message",
		"chatId": chatID,
		"from":   username,
	})

	respond(w, http.StatusOK, map[string]string{"message": "Message pushed successfully"})
}

// Text appends a structured message to a chat by ID. The message parameter
// must be a JSON object carrying content, timestamp and sender, and the
// chat must belong to the caller.
func (h *ChatHandler) Text(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.Username(ctx)
	q := r.URL.Query()
	rawID, rawMessage := q.Get("chatId"), q.Get("message")

	if rawID == "" || rawMessage == "" {
		respondErr(w, http.StatusBadRequest, "chatId and message are required")
		return
	}

	chatID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid chat id")
		return
	}

	var probe struct {
		Content   string          `json:"content"`
		Timestamp json.RawMessage `json:"timestamp"`
		Sender    string          `json:"sender"`
	}
	if err := json.Unmarshal([]byte(rawMessage), &probe); err != nil ||
		probe.Content == "" || len(probe.Timestamp) == 0 || probe.Sender == "" {
		respondErr(w, http.StatusBadRequest, "invalid message format")
		return
	}

	var msg models.Message
	if err := json.Unmarshal([]byte(rawMessage), &msg); err != nil {
		respondErr(w, http.StatusBadRequest, "invalid message format")
		return
	}

	owned, err := h.ownsChat(ctx, username, chatID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("text: ownership check failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !owned {
		respondErr(w, http.StatusForbidden, "not your chat")
		return
	}

	if err := h.Store.AppendMessage(ctx, chatID, msg); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "chat not found")
			return
		}
		h.Logger.Error().Err(err).Msg("text: append failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.MessagesPushed.Inc()

	msgs, err := h.Store.GetChatMessages(ctx, chatID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("text: readback failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":  "Text sent successfully",
		"chatId":   chatID,
		"messages": msgs,
	})
}

// GetAllChats returns the caller's chat-ID list; with full=true the message
// logs come along, fetched in one batched query.
func (h *ChatHandler) GetAllChats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.Username(ctx)
	full := r.URL.Query().Get("full") == "true"

	ids, err := h.Store.UserChatIDs(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error().Err(err).Msg("getallchats: chat list failed")
		respondErr(w, http.StatusInternalServerError, "internal DB error")
		return
	}

	if !full || len(ids) == 0 {
		if ids == nil {
			ids = []int64{}
		}
		respond(w, http.StatusOK, map[string]interface{}{"chats": ids})
		return
	}

	chats, err := h.Store.GetChats(ctx, ids)
	if err != nil {
		h.Logger.Error().Err(err).Msg("getallchats: batched fetch failed")
		respondErr(w, http.StatusInternalServerError, "could not fetch chats")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{"chats": chats})
}

func (h *ChatHandler) ownsChat(ctx context.Context, username string, chatID int64) (bool, error) {
	ids, err := h.Store.UserChatIDs(ctx, username)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, chatID), nil
}

// sharedChat returns the first chat ID (caller's list order) present in
// both users' lists.
func (h *ChatHandler) sharedChat(ctx context.Context, username, target string) (int64, bool, error) {
	userIDs, err := h.Store.UserChatIDs(ctx, username)
	if err != nil {
		return 0, false, err
	}
	targetIDs, err := h.Store.UserChatIDs(ctx, target)
	if err != nil {
		return 0, false, err
	}

	for _, id := range userIDs {
		if slices.Contains(targetIDs, id) {
			return id, true, nil
		}
	}
	return 0, false, nil
}
