// Package main runs an in-memory grocery API for local development.
// It speaks the same protocol as the real service (/status, /login, /item)
// so the groceries CLI can be exercised without a deployment.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/donaldgifford/groceries/internal/mockapi"
	"github.com/donaldgifford/groceries/pkg/logger"
)

// seed is the optional fixture loaded at startup.
type seed struct {
	Users map[string]string `json:"users"`
	Items []string          `json:"items"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	user := flag.String("user", "user:pass", "username:password accepted by /login")
	fixtureFile := flag.String("fixture", "", "optional JSON file with users and items to preload")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.NewWithWriter(os.Stdout, *logLevel, "text")

	store := mockapi.NewStore()
	if err := addUser(store, *user); err != nil {
		log.Error("invalid --user", "error", err)
		os.Exit(1)
	}
	if *fixtureFile != "" {
		s, err := loadFixture(*fixtureFile)
		if err != nil {
			log.Error("failed to load fixture", "path", *fixtureFile, "error", err)
			os.Exit(1)
		}
		apply(store, s)
		log.Info("loaded fixture", "users", len(s.Users), "items", len(s.Items))
	}

	e := mockapi.NewServer(store, log)

	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock grocery API", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutting down server", "error", err)
	}
	log.Info("server stopped")
}

func addUser(store *mockapi.Store, spec string) error {
	username, password, ok := strings.Cut(spec, ":")
	if !ok || username == "" {
		return fmt.Errorf("want username:password, got %q", spec)
	}
	store.AddUser(username, password)
	return nil
}

func loadFixture(path string) (*seed, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var s seed
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &s, nil
}

func apply(store *mockapi.Store, s *seed) {
	for username, password := range s.Users {
		store.AddUser(username, password)
	}
	for _, name := range s.Items {
		store.Add(name)
	}
}
