package speech

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Defaults for the OpenAI speech endpoint.
const (
	DefaultModel = "tts-1"
	DefaultVoice = "onyx"
	DefaultSpeed = 1.0

	// maxInputChars is the speech endpoint's input limit.
	maxInputChars = 4096
)

// OpenAIRenderer implements Renderer using the OpenAI speech endpoint.
type OpenAIRenderer struct {
	client *openai.Client
	model  string
	voice  string
	speed  float64
	logger *slog.Logger
}

// NewOpenAIRenderer creates an mp3 renderer. Zero values fall back to the
// package defaults.
func NewOpenAIRenderer(apiKey, model, voice string, speed float64, logger *slog.Logger, opts ...option.RequestOption) *OpenAIRenderer {
	if model == "" {
		model = DefaultModel
	}
	if voice == "" {
		voice = DefaultVoice
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIRenderer{
		client: &client,
		model:  model,
		voice:  voice,
		speed:  speed,
		logger: logger,
	}
}

// Render synthesizes text to mp3. Text beyond the endpoint's input limit is
// cut at the last sentence boundary that fits.
func (r *OpenAIRenderer) Render(ctx context.Context, text string) (*Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	input := clip(text, maxInputChars)
	if len(input) < len(text) {
		r.logger.Warn("Recap text clipped for speech", "chars", len([]rune(text)), "limit", maxInputChars)
	}

	start := time.Now()
	resp, err := r.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(r.model),
		Input:          input,
		Voice:          openai.AudioSpeechNewParamsVoice(r.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		Speed:          openai.Float(r.speed),
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech error: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openai speech returned no audio")
	}

	r.logger.Info("Speech synthesized",
		"model", r.model, "voice", r.voice,
		"bytes", len(data), "duration", time.Since(start).Round(time.Millisecond))
	return &Audio{Data: data, Format: "mp3"}, nil
}

// clip shortens s to at most limit runes, preferring to end on a sentence.
func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if i := strings.LastIndexAny(cut, ".!?"); i > 0 {
		return cut[:i+1]
	}
	return cut
}
