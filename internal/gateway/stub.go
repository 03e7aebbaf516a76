package gateway

import (
	"context"
	"sync"
)

// Stub is a deterministic in-memory gateway used by tests and offline
// runs. Responses are returned in order; FailAt injects a failure at a
// specific 0-based call index.
type Stub struct {
	mu        sync.Mutex
	responses []string
	calls     int

	// FailAt is the call index at which Err is returned; -1 disables it.
	FailAt int
	Err    error
}

// NewStub creates a stub returning the given responses in order.
func NewStub(responses ...string) *Stub {
	return &Stub{responses: responses, FailAt: -1}
}

// Complete returns the next canned response, or the configured error
// when the failure index is reached.
func (s *Stub) Complete(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.calls
	s.calls++

	if s.FailAt >= 0 && idx == s.FailAt {
		if s.Err != nil {
			return "", s.Err
		}
		return "", &Error{Kind: KindBackend, Attempts: 1}
	}
	if idx >= len(s.responses) {
		return "", &Error{Kind: KindMalformedResponse, Attempts: 1}
	}
	return s.responses[idx], nil
}

// Calls reports how many times Complete was invoked.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
