package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/vidbrief/internal/api"
	"github.com/dgallion1/vidbrief/internal/backend"
	"github.com/dgallion1/vidbrief/internal/config"
	"github.com/dgallion1/vidbrief/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	client := backend.NewClient(cfg.BackendURL, cfg.OEmbedURL, backend.Timeouts{
		Metadata: cfg.MetadataTimeout,
		Summary:  cfg.SummaryTimeout,
		Ask:      cfg.AskTimeout,
		Insights: cfg.InsightsTimeout,
		Entities: cfg.EntitiesTimeout,
	})

	// Chat sessions.
	sessions := session.NewStore(cfg.SessionTTL, cfg.MaxHistory)
	sessions.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(client, sessions, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.SummaryTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		sessions.Stop()
		client.Close()
	}()

	log.Info("starting vidbrief", "port", cfg.Port, "backend", cfg.BackendURL)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
