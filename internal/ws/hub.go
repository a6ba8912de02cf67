// Package ws pushes live notifications (new messages, new chats) to signed-in
// users holding a websocket connection. Delivery is best effort: a client
// that cannot keep up is dropped.
package ws

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type notification struct {
	username string
	payload  []byte
}

type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Outbound notifications addressed by username.
	notify chan notification

	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		notify:     make(chan notification, 64),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case n := <-h.notify:
			for client := range h.clients {
				if client.username != n.username {
					continue
				}
				select {
				case client.send <- n.payload:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Notify queues a payload for every connection the user holds. Dropped when
// the hub's queue is full rather than blocking the request that caused it.
func (h *Hub) Notify(username string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("marshal notification")
		return
	}

	select {
	case h.notify <- notification{username: username, payload: data}:
	default:
		h.logger.Warn().Str("user", username).Msg("notification queue full, dropping")
	}
}
