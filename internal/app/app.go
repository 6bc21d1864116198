// Package app builds the wired recap service from a Config. Every binary
// goes through New so the API, CLI and MCP server behave identically.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/albapepper/fantasy-recap/internal/artifact"
	"github.com/albapepper/fantasy-recap/internal/cache"
	"github.com/albapepper/fantasy-recap/internal/config"
	"github.com/albapepper/fantasy-recap/internal/league"
	"github.com/albapepper/fantasy-recap/internal/metrics"
	"github.com/albapepper/fantasy-recap/internal/narrative"
	"github.com/albapepper/fantasy-recap/internal/pipeline"
	"github.com/albapepper/fantasy-recap/internal/recap"
	"github.com/albapepper/fantasy-recap/internal/speech"
)

// App holds the shared components.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *metrics.Manager
	League    *league.Client
	Artifacts *artifact.Store
	Cache     cache.Store
	Generator *pipeline.Generator
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// New wires every component. A Redis cache is used when REDIS_URL is set
// and reachable; otherwise responses are cached in memory.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := metrics.NewManager(metrics.WithProcessCollectors())

	leagueClient := league.NewClient(league.Options{
		BaseURL:           cfg.ESPNBaseURL,
		LeagueID:          cfg.LeagueID,
		ESPNS2:            cfg.ESPNS2,
		SWID:              cfg.SWID,
		RequestsPerMinute: cfg.ESPNRequestsPerMinute,
		Timeout:           cfg.LeagueTimeout,
		Logger:            logger,
		Recorder:          m,
	})

	gen, err := NarrativeGenerator(cfg, logger)
	if err != nil {
		return nil, err
	}

	renderer := speech.NewOpenAIRenderer(cfg.OpenAIAPIKey, cfg.TTSModel, cfg.TTSVoice, cfg.TTSSpeed, logger)

	store, err := artifact.NewStore(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		League:    leagueClient,
		Artifacts: store,
		Cache:     newCache(ctx, cfg, logger),
	}
	a.Generator = pipeline.New(pipeline.Options{
		Source:      leagueClient,
		Composer:    recap.NewComposer(gen, logger),
		Renderer:    renderer,
		Store:       store,
		DefaultYear: cfg.LeagueYear,
		Timeouts: pipeline.Timeouts{
			League:    cfg.LeagueTimeout,
			Narrative: cfg.NarrativeTimeout,
			Speech:    cfg.SpeechTimeout,
		},
		Logger:   logger,
		Recorder: m,
	})

	logger.Info("recap service wired",
		"league_id", cfg.LeagueID,
		"narrative_provider", cfg.NarrativeProvider,
		"output_dir", store.Dir,
	)
	return a, nil
}

// NarrativeGenerator selects the configured narrative provider.
func NarrativeGenerator(cfg *config.Config, logger *slog.Logger) (recap.NarrativeGenerator, error) {
	switch cfg.NarrativeProvider {
	case config.ProviderOpenAI:
		return narrative.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIChatModel, logger), nil
	case config.ProviderAnthropic:
		return narrative.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, logger), nil
	default:
		return nil, fmt.Errorf("%w: narrative provider %q", config.ErrInvalidConfig, cfg.NarrativeProvider)
	}
}

func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) cache.Store {
	if cfg.CacheEnabled && cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, logger)
		if err == nil {
			logger.Info("response cache backed by redis")
			return rc
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
	}
	return cache.NewMemory(cfg.CacheEnabled)
}

// Close releases the cache.
func (a *App) Close() error {
	if a.Cache != nil {
		return a.Cache.Close()
	}
	return nil
}
