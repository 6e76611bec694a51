package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMissingAPIKey is returned when a key-based provider has no key
	ErrMissingAPIKey = errors.New("API key not found")
	// ErrUnknownProvider is returned by New for an unsupported provider name
	ErrUnknownProvider = errors.New("unknown translation provider")
)

// Provider translates a single piece of text between two languages
type Provider interface {
	// Translate returns the translated text, or a *ProviderError
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)

	// Name returns the provider name
	Name() string
}

// ErrorKind classifies provider failures
type ErrorKind int

const (
	// KindTransport covers failed calls: network, auth, quota, timeouts
	KindTransport ErrorKind = iota
	// KindResponse means the provider answered with an unexpected shape
	KindResponse
)

func (k ErrorKind) String() string {
	if k == KindResponse {
		return "response"
	}
	return "transport"
}

// ProviderError is returned by every provider on failure
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func transportError(provider string, err error) error {
	return &ProviderError{Provider: provider, Kind: KindTransport, Err: err}
}

func responseError(provider string, format string, args ...interface{}) error {
	return &ProviderError{Provider: provider, Kind: KindResponse, Err: fmt.Errorf(format, args...)}
}

// IsResponseError reports whether err is a malformed-response failure
func IsResponseError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindResponse
}

// Config selects and configures a provider
type Config struct {
	Provider    string // "openai", "gemini", "bedrock" or "deeplx"
	Model       string
	APIKey      string
	BaseURL     string  // OpenAI-compatible base URL or DeepLX endpoint
	Region      string  // AWS region for bedrock
	MaxTokens   int     // Response token limit for LLM providers
	Temperature float32 // Sampling temperature for LLM providers
	Timeout     time.Duration
}

// DefaultConfig returns defaults matching the original Bedrock setup, with
// OpenAI as the provider
func DefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		Region:      "us-west-2",
		MaxTokens:   1000,
		Temperature: 0.1,
		Timeout:     60 * time.Second,
	}
}

// DefaultModel returns the default model for a provider
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4o-mini"
	case "gemini":
		return "gemini-2.0-flash"
	case "bedrock":
		return "anthropic.claude-3-haiku-20240307-v1:0"
	default:
		return ""
	}
}

// New creates the provider named in config
func New(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Model == "" {
		config.Model = DefaultModel(config.Provider)
	}

	var (
		provider Provider
		err      error
	)
	switch strings.ToLower(config.Provider) {
	case "openai":
		provider, err = NewOpenAIProvider(config)
	case "gemini":
		provider, err = NewGeminiProvider(ctx, config)
	case "bedrock":
		provider, err = NewBedrockProvider(ctx, config)
	case "deeplx":
		provider, err = NewDeepLXProvider(config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, config.Provider)
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// Prompt builds the single instruction sent to LLM providers
func Prompt(text, sourceLang, targetLang string) string {
	return fmt.Sprintf("Translate the following text from %s to %s. Only provide the translated text without any additional explanations or the original text such as 'here is the ...' : %s",
		LanguageName(sourceLang), LanguageName(targetLang), text)
}
