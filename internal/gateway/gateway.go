// Package gateway owns the language-model boundary: backend selection,
// request timeout, and bounded retries for transient faults. It never
// interprets response content beyond confirming it is non-empty text.
package gateway

import (
	"context"
	"fmt"
	"time"
)

// Gateway is the single logical operation the rest of the pipeline
// depends on: send a prompt, get text back.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrorKind classifies a gateway failure.
type ErrorKind string

const (
	KindTimeout           ErrorKind = "timeout"
	KindRateLimited       ErrorKind = "rate_limited"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindBackend           ErrorKind = "backend"
)

// Error is the failure surfaced after retries are exhausted (or
// immediately, for non-retryable kinds).
type Error struct {
	Kind     ErrorKind
	Attempts int
	Cause    error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("gateway %s after %d attempt(s)", e.Kind, e.Attempts)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether another attempt could plausibly succeed.
// Malformed content and bad credentials never self-correct.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindRateLimited, KindBackend:
		return true
	}
	return false
}

// Options configures a backend gateway. Zero values fall back to the
// defaults below.
type Options struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
	BaseURL     string
}

const (
	DefaultModel       = "gpt-4.1-nano"
	DefaultTemperature = 0.3
	DefaultTimeout     = 60 * time.Second
	DefaultMaxRetries  = 3
)

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	return o
}
