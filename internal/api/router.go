// Package api wires handlers, middleware and routes into the HTTP router.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bzain/chatter/internal/handlers"
	"github.com/bzain/chatter/internal/middleware"
	"github.com/bzain/chatter/internal/session"
	"github.com/bzain/chatter/internal/store"
	"github.com/bzain/chatter/internal/ws"
)

// NewRouter builds the route table. Everything is GET with query-string
// parameters; authenticated routes resolve the `id` session token through
// the session middleware before their handler runs.
func NewRouter(logger zerolog.Logger, st store.Store, sessions session.Registry, hub *ws.Hub) *mux.Router {
	authHandler := &handlers.AuthHandler{Store: st, Sessions: sessions, Logger: logger}
	chatHandler := &handlers.ChatHandler{Store: st, Hub: hub, Logger: logger}
	articleHandler := &handlers.ArticleHandler{Store: st, Logger: logger}
	healthHandler := &handlers.HealthHandler{Store: st}

	r := mux.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging(logger))

	// Public endpoints
	r.HandleFunc("/", handlers.Root).Methods("GET")
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/signup", authHandler.Signup).Methods("GET")
	r.HandleFunc("/signin", authHandler.Signin).Methods("GET")
	r.HandleFunc("/signout", authHandler.Signout).Methods("GET")

	// Session-authenticated endpoints
	s := r.NewRoute().Subrouter()
	s.Use(middleware.Session(sessions))
	s.HandleFunc("/getinfo", authHandler.GetInfo).Methods("GET")
	s.HandleFunc("/getonline", authHandler.GetOnline).Methods("GET")
	s.HandleFunc("/createchat", chatHandler.CreateChat).Methods("GET")
	s.HandleFunc("/getchat", chatHandler.GetChat).Methods("GET")
	s.HandleFunc("/pushMessage", chatHandler.PushMessage).Methods("GET")
	s.HandleFunc("/getallchats", chatHandler.GetAllChats).Methods("GET")
	s.HandleFunc("/text", chatHandler.Text).Methods("GET")
	s.HandleFunc("/createarticle", articleHandler.Create).Methods("GET")
	s.HandleFunc("/deletearticle", articleHandler.Delete).Methods("GET")
	s.HandleFunc("/getallarticles", articleHandler.GetAll).Methods("GET")
	s.HandleFunc("/gettranslatedarticle", articleHandler.GetTranslated).Methods("GET")

	// Notification stream
	s.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, w, r, middleware.Username(r.Context()))
	})

	return r
}
