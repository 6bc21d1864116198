// Command mcp serves the recap tools over the Model Context Protocol
// (streamable HTTP).
//
// Usage:
//
//	recap-mcp
//	MCP_ADDR=:9000 MCP_PATH=/mcp recap-mcp
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/albapepper/fantasy-recap/internal/api/respond"
	"github.com/albapepper/fantasy-recap/internal/app"
	"github.com/albapepper/fantasy-recap/internal/config"
	"github.com/albapepper/fantasy-recap/internal/mcptool"
)

const version = "1.0.0"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger = app.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize recap generator", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	server := mcptool.NewServer(a.Generator, version)
	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.WriteJSONObject(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle(cfg.MCPPath, handler)

	srv := &http.Server{
		Addr:              cfg.MCPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("MCP HTTP server listening", "addr", cfg.MCPAddr, "path", cfg.MCPPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
