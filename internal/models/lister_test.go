package models

import (
	"bytes"
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	err := lister.ListAvailableModels(context.Background())
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

func TestCategorize(t *testing.T) {
	ids := []string{
		"tts-1", "gpt-4o-mini", "dall-e-3", "gpt-4o", "text-embedding-3-small",
		"whisper-1", "o3-mini", "gpt-4o-audio-preview", "chatgpt-4o-latest",
	}

	got := Categorize(ids)

	wantChat := []string{"chatgpt-4o-latest", "gpt-4o", "gpt-4o-mini", "o3-mini"}
	if !reflect.DeepEqual(got.Chat, wantChat) {
		t.Errorf("Chat = %v, want %v", got.Chat, wantChat)
	}
	if len(got.Other) != 5 {
		t.Errorf("Expected 5 other models, got %v", got.Other)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	lister := NewLister("key", "")
	lister.out = &buf

	lister.print(Categories{Chat: []string{"gpt-4o-mini"}, Other: []string{"tts-1"}})

	output := buf.String()
	if !strings.Contains(output, "  gpt-4o-mini\n") {
		t.Errorf("Expected chat model in output, got %q", output)
	}
	if !strings.Contains(output, "1 other models") {
		t.Errorf("Expected other model count in output, got %q", output)
	}

	buf.Reset()
	lister.print(Categories{})
	if !strings.Contains(buf.String(), "No chat models found") {
		t.Errorf("Expected empty notice, got %q", buf.String())
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	lister := NewLister(apiKey, "")

	err := lister.ListAvailableModels(context.Background())
	if err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
