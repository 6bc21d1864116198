// Package api wires the HTTP surface: middleware, routes and API docs.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/fantasy-recap/internal/api/handler"
	"github.com/albapepper/fantasy-recap/internal/config"
	"github.com/albapepper/fantasy-recap/internal/metrics"
)

//go:embed openapi.json
var openAPISpec []byte

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, m *metrics.Manager, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoverMiddleware(logger))
	r.Use(MetricsMiddleware(m))
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip; audio/mpeg is not compressed

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Range"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Content-Length"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	// --- Routes ---
	r.Get("/", h.Root)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Get("/docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAPISpec)
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Get("/league-info", h.GetLeagueInfo)

		r.Post("/generate-recap", h.GenerateRecap)
		r.Post("/generate_recap", h.GenerateRecap)

		r.Get("/audio/{filename}", h.GetAudio)
		r.Get("/available-audio", h.ListAudio)
	})

	return r
}
