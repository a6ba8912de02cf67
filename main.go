package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/bzain/chatter/internal/api"
	"github.com/bzain/chatter/internal/config"
	"github.com/bzain/chatter/internal/session"
	"github.com/bzain/chatter/internal/store/sqlstore"
	"github.com/bzain/chatter/internal/ws"
)

var configPath = flag.String("config", "", "path to config.json (defaults to ./config.json)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	if cfg.Database.Verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	// Open the database, creating the directory and tables if absent.
	if err := os.MkdirAll(cfg.Database.Path, 0o755); err != nil {
		logger.Fatal().Err(err).Msg("create database directory")
	}
	dsn := filepath.Join(cfg.Database.Path, cfg.Database.Name) + "?_journal_mode=WAL&_busy_timeout=5000"
	store, err := sqlstore.New(dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer store.Close()
	logger.Info().Str("path", cfg.Database.Path).Str("name", cfg.Database.Name).Msg("database ready")

	// Sessions live in memory; a restart signs everyone out.
	sessions := session.NewMemory(cfg.Salt)

	hub := ws.NewHub(logger)
	go hub.Run()

	router := api.NewRouter(logger, store, sessions, hub)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "text" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
