package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/albapepper/fantasy-recap/internal/config"
)

var configEnvVars = []string{
	"RECAP_CONFIG", "LEAGUE_ID", "LEAGUE_YEAR", "ESPN_S2", "SWID", "ESPN_BASE_URL",
	"ESPN_REQUESTS_PER_MINUTE", "LEAGUE_TIMEOUT", "NARRATIVE_PROVIDER", "OPENAI_API_KEY",
	"OPENAI_CHAT_MODEL", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "NARRATIVE_TIMEOUT",
	"TTS_MODEL", "TTS_VOICE", "TTS_SPEED", "SPEECH_TIMEOUT", "OUTPUT_DIR", "API_HOST",
	"API_PORT", "ENVIRONMENT", "CORS_ALLOW_ORIGINS", "RATE_LIMIT_ENABLED",
	"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "CACHE_ENABLED", "CACHE_TTL", "REDIS_URL",
	"MCP_ADDR", "MCP_PATH", "LOG_LEVEL", "LOG_FORMAT",
}

// clearConfigEnv unsets every config variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvVars {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
		_ = os.Unsetenv(k)
	}
}

func setCredentials(t *testing.T) {
	t.Setenv("LEAGUE_ID", "123456")
	t.Setenv("ESPN_S2", "s2-cookie")
	t.Setenv("SWID", "{SWID}")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)
	setCredentials(t)

	convey.Convey("Given only the required credentials", t, func() {
		cfg, err := config.Load()

		convey.Convey("Then defaults fill everything else", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.LeagueID, convey.ShouldEqual, 123456)
			convey.So(cfg.ESPNS2, convey.ShouldEqual, "s2-cookie")
			convey.So(cfg.APIPort, convey.ShouldEqual, 5000)
			convey.So(cfg.Addr(), convey.ShouldEqual, "0.0.0.0:5000")
			convey.So(cfg.NarrativeProvider, convey.ShouldEqual, config.ProviderOpenAI)
			convey.So(cfg.TTSVoice, convey.ShouldEqual, "onyx")
			convey.So(cfg.SpeechTimeout, convey.ShouldEqual, 120*time.Second)
			convey.So(cfg.LeagueYear, convey.ShouldEqual, 0)
			convey.So(cfg.IsProduction(), convey.ShouldBeFalse)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	setCredentials(t)
	t.Setenv("API_PORT", "8080")
	t.Setenv("LEAGUE_YEAR", "2023")
	t.Setenv("NARRATIVE_TIMEOUT", "45s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("TTS_SPEED", "1.25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	convey.Convey("Given environment overrides", t, func() {
		cfg, err := config.Load()

		convey.Convey("Then they replace the defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.APIPort, convey.ShouldEqual, 8080)
			convey.So(cfg.LeagueYear, convey.ShouldEqual, 2023)
			convey.So(cfg.NarrativeTimeout, convey.ShouldEqual, 45*time.Second)
			convey.So(cfg.CORSAllowOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			convey.So(cfg.CacheEnabled, convey.ShouldBeFalse)
			convey.So(cfg.TTSSpeed, convey.ShouldEqual, 1.25)
			convey.So(cfg.Level().String(), convey.ShouldEqual, "DEBUG")
		})
	})
}

func TestLoadYAMLFile(t *testing.T) {
	clearConfigEnv(t)
	setCredentials(t)
	path := filepath.Join(t.TempDir(), "recap.yaml")
	yamlContent := `
api_port: 7000
output_dir: /tmp/recaps
tts_voice: nova
narrative_provider: anthropic
anthropic_api_key: ak-test
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECAP_CONFIG", path)
	t.Setenv("TTS_VOICE", "echo")

	convey.Convey("Given a YAML file and an env override", t, func() {
		cfg, err := config.Load()

		convey.Convey("Then the file applies and env wins over it", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.APIPort, convey.ShouldEqual, 7000)
			convey.So(cfg.OutputDir, convey.ShouldEqual, "/tmp/recaps")
			convey.So(cfg.NarrativeProvider, convey.ShouldEqual, config.ProviderAnthropic)
			convey.So(cfg.AnthropicAPIKey, convey.ShouldEqual, "ak-test")
			convey.So(cfg.TTSVoice, convey.ShouldEqual, "echo")
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	clearConfigEnv(t)
	setCredentials(t)
	t.Setenv("RECAP_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	convey.Convey("Given a config file that does not exist", t, func() {
		_, err := config.Load()
		convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
	})
}

func TestLoadMissingCredentials(t *testing.T) {
	clearConfigEnv(t)

	convey.Convey("Given no credentials at all", t, func() {
		_, err := config.Load()

		convey.Convey("Then every missing credential is reported", func() {
			convey.So(errors.Is(err, config.ErrMissingCredential), convey.ShouldBeTrue)
			for _, name := range []string{"LEAGUE_ID", "ESPN_S2", "SWID", "OPENAI_API_KEY"} {
				convey.So(strings.Contains(err.Error(), name), convey.ShouldBeTrue)
			}
		})
	})
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		c := config.New()
		c.LeagueID = 1
		c.ESPNS2 = "s2"
		c.SWID = "swid"
		c.OpenAIAPIKey = "sk"
		return c
	}

	convey.Convey("Given a configuration", t, func() {
		convey.Convey("A complete one is valid", func() {
			convey.So(valid().Validate(), convey.ShouldBeNil)
		})

		convey.Convey("The anthropic provider needs its key", func() {
			c := valid()
			c.NarrativeProvider = config.ProviderAnthropic
			err := c.Validate()
			convey.So(errors.Is(err, config.ErrMissingCredential), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "ANTHROPIC_API_KEY")
		})

		convey.Convey("An unknown provider is invalid", func() {
			c := valid()
			c.NarrativeProvider = "cohere"
			convey.So(errors.Is(c.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Out-of-range values are invalid", func() {
			c := valid()
			c.TTSSpeed = 9
			c.APIPort = 0
			c.LogFormat = "xml"
			err := c.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, config.ErrMissingCredential), convey.ShouldBeFalse)
			convey.So(err.Error(), convey.ShouldContainSubstring, "TTS_SPEED")
			convey.So(err.Error(), convey.ShouldContainSubstring, "LOG_FORMAT")
		})
	})
}
