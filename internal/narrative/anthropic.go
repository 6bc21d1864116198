package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/albapepper/fantasy-recap/internal/recap"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = string(anthropic.ModelClaudeHaiku4_5)

const anthropicMaxTokens = 1024

// AnthropicClient generates recaps with the Anthropic messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
	logger *slog.Logger
}

// NewAnthropicClient creates a generator. Extra request options are passed
// through to the SDK.
func NewAnthropicClient(apiKey, model string, logger *slog.Logger, opts ...option.RequestOption) *AnthropicClient {
	if model == "" {
		model = DefaultAnthropicModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &AnthropicClient{
		client: &client,
		model:  anthropic.Model(model),
		logger: logger,
	}
}

// Generate implements recap.NarrativeGenerator.
func (c *AnthropicClient) Generate(ctx context.Context, req recap.NarrativeRequest) (string, error) {
	system, err := SystemPrompt(req.Personality)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(UserPrompt(req))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.Text)
	}

	c.logger.Info("Recap generated",
		"provider", "anthropic", "model", string(c.model),
		"personality", string(req.Personality), "prompt_version", promptVersion,
		"output_tokens", resp.Usage.OutputTokens)
	return cleanResponse(sb.String()), nil
}
