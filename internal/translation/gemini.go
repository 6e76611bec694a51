package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider translates with a Google Gemini model
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini provider using the Gemini API
// backend. BaseURL overrides the API endpoint.
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini %w", ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      config.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: config.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, config: config}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Translate translates text with GenerateContent
func (p *GeminiProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.config.Temperature),
		MaxOutputTokens: int32(p.config.MaxTokens),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.Model, genai.Text(Prompt(text, sourceLang, targetLang)), genConfig)
	if err != nil {
		return "", transportError(p.Name(), err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", responseError(p.Name(), "no candidates returned")
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", responseError(p.Name(), "empty text (finish reason %q)", resp.Candidates[0].FinishReason)
	}
	return translated, nil
}
