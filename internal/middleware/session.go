package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bzain/chatter/internal/session"
)

type contextKey string

const usernameKey contextKey = "username"

// Session resolves the `id` query parameter (the caller's session token)
// into a username and stores it in the request context. Requests without a
// token get 400; requests with a token nobody holds get 404, matching the
// status codes the API has always used.
func Session(reg session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("id")
			if token == "" {
				writeError(w, http.StatusBadRequest, "session id is required")
				return
			}

			username, err := reg.Resolve(token)
			if err != nil {
				writeError(w, http.StatusNotFound, "invalid session")
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Username returns the session username stored by Session, or "" when the
// request never passed through it.
func Username(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// WithUsername is a test seam for handlers that expect Session to have run.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
