package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newDeepLXServer(t *testing.T, status int, body string, seen *deeplxRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
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

func newTestDeepLX(t *testing.T, url string) *DeepLXProvider {
	t.Helper()
	provider, err := NewDeepLXProvider(&Config{Provider: "deeplx", BaseURL: url, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewDeepLXProvider failed: %v", err)
	}
	return provider
}

func TestDeepLXProvider_Translate(t *testing.T) {
	var seen deeplxRequest
	server := newDeepLXServer(t, http.StatusOK, `{"code": 200, "data": " 你好 "}`, &seen)

	got, err := newTestDeepLX(t, server.URL).Translate(context.Background(), "Hello", "English", "Chinese")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "你好" {
		t.Errorf("Translate() = %q, want 你好", got)
	}

	want := deeplxRequest{Text: "Hello", SourceLang: "EN", TargetLang: "ZH"}
	if seen != want {
		t.Errorf("Request = %+v, want %+v", seen, want)
	}
}

func TestDeepLXProvider_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantResponse bool
	}{
		{"server error", http.StatusServiceUnavailable, `{"code": 503}`, false},
		{"error code", http.StatusOK, `{"code": 400, "data": ""}`, true},
		{"empty data", http.StatusOK, `{"code": 200, "data": ""}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newDeepLXServer(t, tt.status, tt.body, nil)

			_, err := newTestDeepLX(t, server.URL).Translate(context.Background(), "Hello", "English", "Chinese")
			if err == nil {
				t.Fatal("Expected an error")
			}
			if IsResponseError(err) != tt.wantResponse {
				t.Errorf("IsResponseError(%v) = %v, want %v", err, !tt.wantResponse, tt.wantResponse)
			}
		})
	}
}

func TestNewDeepLXProvider_DefaultURL(t *testing.T) {
	provider, err := NewDeepLXProvider(&Config{Provider: "deeplx"})
	if err != nil {
		t.Fatalf("NewDeepLXProvider failed: %v", err)
	}
	if provider.url != defaultDeepLXURL {
		t.Errorf("url = %q, want %q", provider.url, defaultDeepLXURL)
	}
}
