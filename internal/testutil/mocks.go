package testutil

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider mocks a translation provider. It is safe for concurrent use.
type MockProvider struct {
	Translations map[string]string
	Errors       map[string]error

	mu    sync.Mutex
	calls []string
}

// NewMockProvider creates a mock with the given canned translations
func NewMockProvider(translations map[string]string) *MockProvider {
	return &MockProvider{
		Translations: translations,
		Errors:       make(map[string]error),
	}
}

// Name returns the mock provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// Translate mocks translating text
func (m *MockProvider) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("%s (%s->%s)", text, fromLang, toLang), nil
}

// Calls returns the texts passed to Translate, in call order
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how often Translate was called
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// FuncProvider adapts a function to the provider interface
type FuncProvider func(ctx context.Context, text, fromLang, toLang string) (string, error)

// Name returns the provider name
func (f FuncProvider) Name() string {
	return "func"
}

// Translate calls f
func (f FuncProvider) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	return f(ctx, text, fromLang, toLang)
}
