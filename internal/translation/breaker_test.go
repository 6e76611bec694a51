package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestBreaker_OpensAfterTransportFailures(t *testing.T) {
	stub := &stubProvider{fn: func(string) (string, error) {
		return "", transportError("stub", errors.New("connection refused"))
	}}
	b := NewBreaker(stub, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		if _, err := b.Translate(context.Background(), "Hello", "English", "Chinese"); err == nil {
			t.Fatal("Expected failure")
		}
	}

	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %s, want open", b.State())
	}

	_, err := b.Translate(context.Background(), "Hello", "English", "Chinese")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected ErrOpenState, got %v", err)
	}
	if IsResponseError(err) {
		t.Error("Open breaker must look like a transport failure")
	}
	if stub.calls != 2 {
		t.Errorf("Open breaker should not call the provider, got %d calls", stub.calls)
	}
}

func TestBreaker_ResponseErrorsDoNotTrip(t *testing.T) {
	stub := &stubProvider{fn: func(string) (string, error) {
		return "", responseError("stub", "no choices returned")
	}}
	b := NewBreaker(stub, BreakerSettings{MaxFailures: 2})

	for i := 0; i < 5; i++ {
		_, err := b.Translate(context.Background(), "Hello", "English", "Chinese")
		if !IsResponseError(err) {
			t.Fatalf("Expected response error, got %v", err)
		}
	}

	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %s, want closed", b.State())
	}
	if stub.calls != 5 {
		t.Errorf("Expected 5 calls, got %d", stub.calls)
	}
}

func TestBreaker_PassesResults(t *testing.T) {
	stub := &stubProvider{fn: func(text string) (string, error) { return text + "!", nil }}
	b := NewBreaker(stub, BreakerSettings{})

	got, err := b.Translate(context.Background(), "Hello", "English", "Chinese")
	if err != nil || got != "Hello!" {
		t.Errorf("Translate() = %q, %v", got, err)
	}
}
