package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider translates with an OpenAI chat model
type OpenAIProvider struct {
	apiKey string
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI provider. BaseURL switches the
// client to an OpenAI-compatible endpoint.
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI %w", ErrMissingAPIKey)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		apiKey: config.APIKey,
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Translate translates text using a chat completion
func (p *OpenAIProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Prompt(text, sourceLang, targetLang),
			},
		},
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", transportError(p.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return "", responseError(p.Name(), "no choices returned")
	}

	choice := resp.Choices[0]
	translated := strings.TrimSpace(choice.Message.Content)
	if translated == "" {
		return "", responseError(p.Name(), "empty content (finish reason %q)", choice.FinishReason)
	}
	return translated, nil
}
