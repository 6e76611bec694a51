package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newGeminiServer serves generateContent with the given status and body
func newGeminiServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if seen != nil {
			json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestGemini(t *testing.T, baseURL string) *GeminiProvider {
	t.Helper()
	config := DefaultConfig()
	config.Provider = "gemini"
	config.APIKey = "test-key"
	config.Model = DefaultModel("gemini")
	config.BaseURL = baseURL
	provider, err := NewGeminiProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("NewGeminiProvider failed: %v", err)
	}
	return provider
}

func TestGeminiProvider_Translate(t *testing.T) {
	var seen map[string]any
	server := newGeminiServer(t, http.StatusOK, `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": " 你好\n"}]}, "finishReason": "STOP"}]
	}`, &seen)

	got, err := newTestGemini(t, server.URL).Translate(context.Background(), "Hello", "English", "Chinese")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "你好" {
		t.Errorf("Translate() = %q, want 你好", got)
	}

	contents, _ := seen["contents"].([]any)
	if len(contents) != 1 {
		t.Fatalf("Expected one content, got %v", seen["contents"])
	}
	parts, _ := contents[0].(map[string]any)["parts"].([]any)
	if len(parts) != 1 {
		t.Fatalf("Expected one part, got %v", contents[0])
	}
	if text, _ := parts[0].(map[string]any)["text"].(string); text != Prompt("Hello", "English", "Chinese") {
		t.Errorf("Unexpected prompt %q", text)
	}
}

func TestGeminiProvider_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
	}{
		{"no candidates", http.StatusOK, `{"candidates": []}`, KindResponse},
		{"empty text", http.StatusOK,
			`{"candidates": [{"content": {"role": "model", "parts": []}, "finishReason": "SAFETY"}]}`, KindResponse},
		{"rejected request", http.StatusBadRequest,
			`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`, KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newGeminiServer(t, tt.status, tt.body, nil)

			got, err := newTestGemini(t, server.URL).Translate(context.Background(), "Hello", "English", "Chinese")
			var pe *ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected ProviderError, got %q, %v", got, err)
			}
			if pe.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", pe.Kind, tt.wantKind)
			}
		})
	}
}
