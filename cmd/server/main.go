package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/vemurilakshmikanth/bill-splitter/internal/config"
	"github.com/vemurilakshmikanth/bill-splitter/internal/extraction"
	"github.com/vemurilakshmikanth/bill-splitter/internal/httpapi"
	"github.com/vemurilakshmikanth/bill-splitter/internal/session"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage/memory"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage/sqlite"
	"github.com/vemurilakshmikanth/bill-splitter/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to initialize storage", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "backend", cfg.Backend, "db_path", cfg.DBPath)

	manager := session.NewManager(store)
	if len(cfg.Roster) > 0 {
		manager = manager.WithDefaultRoster(cfg.Roster)
	}

	var extractor extraction.Client
	if cfg.AnthropicAPIKey != "" {
		extractor = extraction.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		slog.Info("extraction client configured", "model", cfg.AnthropicModel)
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set, image uploads disabled")
	}

	server := httpapi.New(manager, extractor, cfg.ExtractConcurrency)

	// h2c allows HTTP/2 without TLS for clients that want multiplexed
	// uploads; plain HTTP/1.1 still works.
	handler := h2c.NewHandler(server.Handler(), &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Backend == "memory" {
		return memory.New(), nil
	}
	return sqlite.New(cfg.DBPath)
}
