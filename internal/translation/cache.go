package translation

import (
	"context"
	"sync"
)

type cacheKey struct {
	text       string
	sourceLang string
	targetLang string
}

// TranslationCache stores translations in memory for the duration of a run
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[cacheKey]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[cacheKey]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(text, sourceLang, targetLang, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[cacheKey{text, sourceLang, targetLang}] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(text, sourceLang, targetLang string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[cacheKey{text, sourceLang, targetLang}]
	return translation, ok
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}

// Memo reuses successful translations of identical cell texts. Failures
// are never cached.
type Memo struct {
	inner Provider
	cache *TranslationCache
}

// NewMemo wraps provider with a fresh cache
func NewMemo(provider Provider) *Memo {
	return &Memo{inner: provider, cache: NewTranslationCache()}
}

// Name returns the wrapped provider name
func (m *Memo) Name() string {
	return m.inner.Name()
}

// Cache returns the underlying cache
func (m *Memo) Cache() *TranslationCache {
	return m.cache
}

// Translate returns a cached translation or asks the wrapped provider
func (m *Memo) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if translation, ok := m.cache.Get(text, sourceLang, targetLang); ok {
		return translation, nil
	}

	translation, err := m.inner.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return "", err
	}

	m.cache.Add(text, sourceLang, targetLang, translation)
	return translation, nil
}
