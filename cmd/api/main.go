// Command api is the Fantasy Football Recap Generator API server.
//
// Usage:
//
//	recap-api
//	API_PORT=8080 recap-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/fantasy-recap/internal/api"
	"github.com/albapepper/fantasy-recap/internal/api/handler"
	"github.com/albapepper/fantasy-recap/internal/app"
	"github.com/albapepper/fantasy-recap/internal/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Missing credentials are fatal here, never per request.
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger = app.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize recap generator", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	h := handler.New(a.Generator, a.Artifacts, a.Cache, cfg.CacheTTL, logger).WithCacheObserver(a.Metrics)
	router := api.NewRouter(h, a.Metrics, cfg, logger)

	// Recap generation waits on the LLM and TTS services, so the write
	// timeout covers every external stage.
	writeTimeout := cfg.LeagueTimeout*2 + cfg.NarrativeTimeout + cfg.SpeechTimeout + 10*time.Second
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Fantasy Football Recap Generator API",
			"addr", srv.Addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
