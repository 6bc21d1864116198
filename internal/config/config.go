// Package config holds process configuration shared by cmd/api, cmd/recap
// and cmd/mcp.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Narrative providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config is populated from defaults, an optional YAML file and the
// environment. Keys are the koanf tags; the environment uses them upper-cased.
type Config struct {
	// League source
	LeagueID              int           `koanf:"league_id"`
	LeagueYear            int           `koanf:"league_year"`
	ESPNS2                string        `koanf:"espn_s2"`
	SWID                  string        `koanf:"swid"`
	ESPNBaseURL           string        `koanf:"espn_base_url"`
	ESPNRequestsPerMinute int           `koanf:"espn_requests_per_minute"`
	LeagueTimeout         time.Duration `koanf:"league_timeout"`

	// Narrative generation
	NarrativeProvider string        `koanf:"narrative_provider"`
	OpenAIAPIKey      string        `koanf:"openai_api_key"`
	OpenAIChatModel   string        `koanf:"openai_chat_model"`
	AnthropicAPIKey   string        `koanf:"anthropic_api_key"`
	AnthropicModel    string        `koanf:"anthropic_model"`
	NarrativeTimeout  time.Duration `koanf:"narrative_timeout"`

	// Speech
	TTSModel      string        `koanf:"tts_model"`
	TTSVoice      string        `koanf:"tts_voice"`
	TTSSpeed      float64       `koanf:"tts_speed"`
	SpeechTimeout time.Duration `koanf:"speech_timeout"`

	// Artifacts
	OutputDir string `koanf:"output_dir"`

	// API server
	APIHost     string `koanf:"api_host"`
	APIPort     int    `koanf:"api_port"`
	Environment string `koanf:"environment"`

	// CORS
	CORSAllowOrigins []string `koanf:"cors_allow_origins"`

	// Rate limiting
	RateLimitEnabled  bool          `koanf:"rate_limit_enabled"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// Cache
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	RedisURL     string        `koanf:"redis_url"`

	// MCP server
	MCPAddr string `koanf:"mcp_addr"`
	MCPPath string `koanf:"mcp_path"`

	// Logging
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		ESPNBaseURL:           "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl",
		ESPNRequestsPerMinute: 60,
		LeagueTimeout:         30 * time.Second,

		NarrativeProvider: ProviderOpenAI,
		OpenAIChatModel:   "gpt-4o-mini",
		AnthropicModel:    "claude-haiku-4-5",
		NarrativeTimeout:  90 * time.Second,

		TTSModel:      "tts-1",
		TTSVoice:      "onyx",
		TTSSpeed:      1.0,
		SpeechTimeout: 120 * time.Second,

		OutputDir: ".",

		APIHost:     "0.0.0.0",
		APIPort:     5000,
		Environment: "development",

		CORSAllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},

		RateLimitEnabled:  true,
		RateLimitRequests: 30,
		RateLimitWindow:   time.Minute,

		CacheEnabled: true,
		CacheTTL:     10 * time.Minute,

		MCPAddr: ":8090",
		MCPPath: "/mcp",

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the API listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

// Level maps LogLevel to a slog level. Unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
