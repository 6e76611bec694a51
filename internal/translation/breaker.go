package translation

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings configures the circuit breaker decorator
type BreakerSettings struct {
	MaxFailures uint32        // Consecutive transport failures before opening
	OpenTimeout time.Duration // How long the breaker stays open
}

// Breaker fails fast once the wrapped provider keeps failing. Response
// errors count as successes: the provider is reachable, only the answer was
// unusable.
type Breaker struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker wraps provider in a circuit breaker
func NewBreaker(provider Provider, settings BreakerSettings) *Breaker {
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        provider.Name(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsResponseError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[breaker] %s: %s -> %s", name, from, to)
		},
	})

	return &Breaker{inner: provider, cb: cb}
}

// Name returns the wrapped provider name
func (b *Breaker) Name() string {
	return b.inner.Name()
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Translate calls the wrapped provider unless the breaker is open
func (b *Breaker) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Translate(ctx, text, sourceLang, targetLang)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return "", transportError(b.Name(), err)
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
