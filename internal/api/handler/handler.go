// Package handler provides HTTP handlers for all API endpoints.
// Handlers call the recap pipeline and the artifact store directly; there is
// no service layer in between.
package handler

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/albapepper/fantasy-recap/internal/api/respond"
	"github.com/albapepper/fantasy-recap/internal/artifact"
	"github.com/albapepper/fantasy-recap/internal/cache"
	"github.com/albapepper/fantasy-recap/internal/pipeline"
	"github.com/albapepper/fantasy-recap/internal/recap"
)

// ServiceName is reported by the health check.
const ServiceName = "Fantasy Football Recap Generator API"

// Recapper runs recaps and reads league metadata.
type Recapper interface {
	Generate(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	LeagueInfo(ctx context.Context, year int) (recap.League, error)
}

// Artifacts lists and opens stored audio.
type Artifacts interface {
	List() ([]artifact.Artifact, error)
	Open(name string) (*os.File, fs.FileInfo, error)
}

// CacheObserver counts response cache lookups.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	recaps    Recapper
	artifacts Artifacts
	cache     cache.Store
	cacheTTL  time.Duration
	observer  CacheObserver
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Handler with shared dependencies.
func New(recaps Recapper, artifacts Artifacts, c cache.Store, cacheTTL time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if c == nil {
		c = cache.NewMemory(false)
	}
	if cacheTTL <= 0 {
		cacheTTL = cache.TTLLeagueInfo
	}
	return &Handler{
		recaps:    recaps,
		artifacts: artifacts,
		cache:     c,
		cacheTTL:  cacheTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// WithCacheObserver sets the recorder for league-info cache lookups.
func (h *Handler) WithCacheObserver(o CacheObserver) *Handler {
	h.observer = o
	return h
}

func (h *Handler) cacheLookup(hit bool) {
	if h.observer == nil {
		return
	}
	if hit {
		h.observer.CacheHit()
	} else {
		h.observer.CacheMiss()
	}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":          ServiceName,
		"version":       "1.0.0",
		"status":        "running",
		"docs":          "/docs",
		"personalities": recap.Personalities(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}

// NotFound is the JSON 404 for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.WriteError(w, http.StatusNotFound, "Endpoint not found")
}

// MethodNotAllowed is the JSON 405 for known routes.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
