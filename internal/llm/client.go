// Package llm is the boundary between adnova and the text completion
// services it drives. Everything behind Completer is a collaborator: it
// takes a prompt and sampling parameters and returns one raw text blob.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrService is matched by every error a provider returns.
var ErrService = errors.New("completion service error")

// Request is a single completion call.
type Request struct {
	// Model overrides the provider's configured model when set.
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer turns a prompt into raw text. Implementations block until the
// provider answers or ctx is done.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// ServiceError wraps a provider failure.
type ServiceError struct {
	Provider   string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

// Unwrap exposes both ErrService and the underlying cause.
func (e *ServiceError) Unwrap() []error {
	return []error{ErrService, e.Err}
}

// Temporary reports whether retrying the same request may succeed.
func (e *ServiceError) Temporary() bool {
	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return false
	}
	switch {
	case e.StatusCode == 0:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	}
	return false
}

func serviceError(provider string, status int, err error) error {
	return &ServiceError{Provider: provider, StatusCode: status, Err: err}
}

// Unavailable returns a Completer that fails every call with err. It lets
// commands that never generate run without provider credentials.
func Unavailable(err error) Completer {
	return CompleterFunc(func(context.Context, Request) (string, error) {
		return "", fmt.Errorf("completion unavailable: %w", err)
	})
}
