package translation

import "context"

// StackOptions selects the decorators wrapped around a provider
type StackOptions struct {
	Dedupe  bool
	Breaker bool
	// BreakerSettings is used when Breaker is set
	BreakerSettings BreakerSettings
}

// NewStack creates the provider named in config and wraps it as opts
// asks. The memo sits outside the breaker so cache hits never count
// against it.
func NewStack(ctx context.Context, config *Config, opts StackOptions) (Provider, error) {
	provider, err := New(ctx, config)
	if err != nil {
		return nil, err
	}
	return Wrap(provider, opts), nil
}

// Wrap applies the decorators selected in opts to provider
func Wrap(provider Provider, opts StackOptions) Provider {
	if opts.Breaker {
		provider = NewBreaker(provider, opts.BreakerSettings)
	}
	if opts.Dedupe {
		provider = NewMemo(provider)
	}
	return provider
}
