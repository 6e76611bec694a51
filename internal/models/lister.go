package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when listing without an API key
var ErrNoAPIKey = fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure provider.openai_key in .sheettrans.yaml")

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
	out    io.Writer
}

// NewLister creates a new model lister. An empty baseURL uses the
// official OpenAI endpoint.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
		out:    os.Stdout,
	}
}

// Categories groups model IDs by what sheettrans can use them for
type Categories struct {
	Chat  []string // Usable for translation
	Other []string // Speech, image, embedding and moderation models
}

// Categorize sorts model IDs into chat models and everything else
func Categorize(ids []string) Categories {
	var c Categories
	for _, id := range ids {
		if isChatModel(id) {
			c.Chat = append(c.Chat, id)
		} else {
			c.Other = append(c.Other, id)
		}
	}
	sort.Strings(c.Chat)
	sort.Strings(c.Other)
	return c
}

func isChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "dall-e", "image", "embedding", "whisper", "moderation", "realtime", "transcribe"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.Contains(id, "gpt") || strings.Contains(id, "chat") ||
		strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4")
}

// ListAvailableModels prints the available chat models
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.apiKey == "" {
		return ErrNoAPIKey
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}

	l.print(Categorize(ids))
	return nil
}

func (l *Lister) print(c Categories) {
	fmt.Fprintln(l.out, "Chat/Translation Models (use with --model):")
	if len(c.Chat) == 0 {
		fmt.Fprintln(l.out, "  No chat models found")
	}
	for _, model := range c.Chat {
		fmt.Fprintf(l.out, "  %s\n", model)
	}
	if len(c.Other) > 0 {
		fmt.Fprintf(l.out, "\n%d other models (speech, image, embedding) not shown\n", len(c.Other))
	}
}
