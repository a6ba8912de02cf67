package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bzain/chatter/internal/metrics"
	"github.com/bzain/chatter/internal/middleware"
	"github.com/bzain/chatter/internal/models"
	"github.com/bzain/chatter/internal/session"
	"github.com/bzain/chatter/internal/store"
)

type AuthHandler struct {
	Store    store.Store
	Sessions session.Registry
	Logger   zerolog.Logger
}

// Signup registers a new user. Credentials arrive as query parameters:
// user, email, pass, phone. No session is issued; the caller signs in
// separately.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user, email, pass, phone := q.Get("user"), q.Get("email"), q.Get("pass"), q.Get("phone")

	if user == "" || email == "" || pass == "" || phone == "" {
		respondErr(w, http.StatusBadRequest, "missing required parameters")
		return
	}
	if len(user) < 3 || len(user) > 20 {
		respondErr(w, http.StatusBadRequest, "username must be between 3 and 20 characters")
		return
	}

	ctx := r.Context()
	_, err := h.Store.GetUserByUsername(ctx, user)
	if err == nil {
		respondErr(w, http.StatusConflict, "username already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.Logger.Error().Err(err).Msg("signup: user lookup failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		h.Logger.Error().Err(err).Msg("signup: hashing failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Store.CreateUser(ctx, user, email, string(hashed), phone); err != nil {
		h.Logger.Error().Err(err).Msg("signup: insert failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.UsersRegistered.Inc()
	respond(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
}

// Signin checks credentials and mints a session token. A second sign-in
// for the same user replaces the previous token.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user, pass := q.Get("user"), q.Get("pass")

	if user == "" || pass == "" {
		respondErr(w, http.StatusBadRequest, "missing required parameters")
		return
	}

	row, err := h.Store.GetUserByUsername(r.Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error().Err(err).Msg("signin: user lookup failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(pass)) != nil {
		respondErr(w, http.StatusUnauthorized, "invalid password")
		return
	}

	token := h.Sessions.Create(user)
	metrics.SignIns.Inc()
	respond(w, http.StatusOK, map[string]string{
		"message":      "Sign in successful",
		"sessionToken": token,
	})
}

// Signout revokes the user's session. It takes the username directly, not
// a token.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		respondErr(w, http.StatusBadRequest, "missing required parameters")
		return
	}

	if err := h.Sessions.Revoke(user); err != nil {
		respondErr(w, http.StatusNotFound, "user not signed in")
		return
	}

	respond(w, http.StatusOK, map[string]string{"message": "Sign out successful"})
}

// GetInfo returns the caller's profile plus, best effort, the other
// participant of each of their chats as inferred from message senders.
// Chat resolution failures degrade to placeholder values, never a 500.
func (h *AuthHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.Username(ctx)

	row, err := h.Store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error().Err(err).Msg("getinfo: user lookup failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	chatIDs, err := h.Store.UserChatIDs(ctx, username)
	if err != nil {
		h.Logger.Error().Err(err).Msg("getinfo: chat list failed")
		respondErr(w, http.StatusInternalServerError, "internal server error")
		return
	}

	result := map[string]interface{}{
		"username":   row.Username,
		"email":      row.Email,
		"phone":      row.Phone,
		"chatAmount": len(chatIDs),
	}

	for i, chatID := range chatIDs {
		key := fmt.Sprintf("chat%d", i)
		msgs, err := h.Store.GetChatMessages(ctx, chatID)
		switch {
		case errors.Is(err, store.ErrCorruptData):
			result[key] = "(invalid)"
		case err != nil:
			result[key] = "(unavailable)"
		default:
			result[key] = otherParticipant(msgs, username)
		}
	}

	respond(w, http.StatusOK, result)
}

// otherParticipant picks the first sender in the thread that isn't the
// caller.
func otherParticipant(msgs []models.Message, username string) string {
	for _, m := range msgs {
		if m.Sender != "" && m.Sender != username {
			return m.Sender
		}
	}
	return "(unknown)"
}

// GetOnline lists every username currently holding a session token, in the
// {"online": N, "user-1": ..} shape the frontend expects.
func (h *AuthHandler) GetOnline(w http.ResponseWriter, r *http.Request) {
	users := h.Sessions.Online()

	response := map[string]interface{}{"online": len(users)}
	for i, username := range users {
		response[fmt.Sprintf("user-%d", i+1)] = username
	}

	respond(w, http.StatusOK, response)
}
