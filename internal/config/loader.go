package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileEnv names the optional YAML config file.
const FileEnv = "RECAP_CONFIG"

// Load builds a Config by layering defaults, optional file, and env vars,
// then validates it. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RECAP_CONFIG is set
//  3. env (LEAGUE_ID, ESPN_S2, OPENAI_API_KEY, ...)
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	known := knownKeys()
	envProvider := env.Provider("", ".", func(s string) string {
		s = strings.ToLower(s)
		if !known[s] {
			return ""
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	return &cfg, nil
}

// knownKeys lists the koanf tags of Config so unrelated environment
// variables are not loaded.
func knownKeys() map[string]bool {
	t := reflect.TypeOf(Config{})
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			keys[tag] = true
		}
	}
	return keys
}

// Validate reports every missing credential and invalid value at once.
func (c *Config) Validate() error {
	var errs []error
	missing := func(name string) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, name))
	}
	invalid := func(msg string) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, msg))
	}

	if c.LeagueID <= 0 {
		missing("LEAGUE_ID")
	}
	if c.ESPNS2 == "" {
		missing("ESPN_S2")
	}
	if c.SWID == "" {
		missing("SWID")
	}

	switch c.NarrativeProvider {
	case ProviderOpenAI:
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			missing("ANTHROPIC_API_KEY")
		}
	default:
		invalid(fmt.Sprintf("NARRATIVE_PROVIDER %q (want %s or %s)", c.NarrativeProvider, ProviderOpenAI, ProviderAnthropic))
	}
	// Speech always needs OpenAI, and so does the default narrative provider.
	if c.OpenAIAPIKey == "" {
		missing("OPENAI_API_KEY")
	}

	if c.LeagueYear < 0 {
		invalid(fmt.Sprintf("LEAGUE_YEAR %d", c.LeagueYear))
	}
	if c.TTSSpeed < 0.25 || c.TTSSpeed > 4.0 {
		invalid(fmt.Sprintf("TTS_SPEED %.2f (want 0.25-4.0)", c.TTSSpeed))
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		invalid(fmt.Sprintf("API_PORT %d", c.APIPort))
	}
	if c.RateLimitEnabled && (c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0) {
		invalid("RATE_LIMIT_REQUESTS/RATE_LIMIT_WINDOW must be positive")
	}
	if c.OutputDir == "" {
		invalid("OUTPUT_DIR is empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		invalid(fmt.Sprintf("LOG_FORMAT %q (want text or json)", c.LogFormat))
	}
	if !strings.HasPrefix(c.MCPPath, "/") {
		invalid(fmt.Sprintf("MCP_PATH %q must start with /", c.MCPPath))
	}

	return errors.Join(errs...)
}
