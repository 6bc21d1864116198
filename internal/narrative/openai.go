package narrative

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/albapepper/fantasy-recap/internal/recap"
)

// DefaultOpenAIModel is used when no chat model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient generates recaps with OpenAI chat completions.
type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
	logger *slog.Logger
}

// NewOpenAIClient creates a generator. Extra request options (base URL,
// HTTP client) are passed through to the SDK.
func NewOpenAIClient(apiKey, model string, logger *slog.Logger, opts ...option.RequestOption) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModel(model),
		logger: logger,
	}
}

// Generate implements recap.NarrativeGenerator.
func (c *OpenAIClient) Generate(ctx context.Context, req recap.NarrativeRequest) (string, error) {
	system, err := SystemPrompt(req.Personality)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(UserPrompt(req)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	c.logger.Info("Recap generated",
		"provider", "openai", "model", string(c.model),
		"personality", string(req.Personality), "prompt_version", promptVersion,
		"tokens", resp.Usage.TotalTokens)
	return cleanResponse(resp.Choices[0].Message.Content), nil
}
