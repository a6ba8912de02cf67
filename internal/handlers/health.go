package handlers

import (
	"net/http"

	"github.com/bzain/chatter/internal/store"
)

type HealthHandler struct {
	Store store.Store
}

// Health reports liveness and whether the database answers.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{
			"status":   "degraded",
			"database": "down",
		})
		return
	}

	respond(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "up",
	})
}
