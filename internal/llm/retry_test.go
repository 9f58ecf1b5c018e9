package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flaky(failures int, status int) (*int, Completer) {
	calls := 0
	return &calls, CompleterFunc(func(ctx context.Context, r Request) (string, error) {
		calls++
		if calls <= failures {
			return "", serviceError("test", status, errors.New("boom"))
		}
		return "done", nil
	})
}

func noSleep(r *Retrying) *[]time.Duration {
	var delays []time.Duration
	r.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return &delays
}

func TestRetrying_RecoversFromTemporaryErrors(t *testing.T) {
	calls, next := flaky(2, http.StatusServiceUnavailable)
	r := NewRetrying(next, RetryConfig{MaxRetries: 3, BaseDelay: 100 * time.Millisecond})
	delays := noSleep(r)

	text, err := r.Complete(context.Background(), Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "done", text)
	assert.Equal(t, 3, *calls)

	require.Len(t, *delays, 2)
	assert.GreaterOrEqual(t, (*delays)[0], 50*time.Millisecond)
	assert.Less(t, (*delays)[0], 100*time.Millisecond)
	assert.GreaterOrEqual(t, (*delays)[1], 100*time.Millisecond)
	assert.Less(t, (*delays)[1], 200*time.Millisecond)
}

func TestRetrying_GivesUp(t *testing.T) {
	calls, next := flaky(10, http.StatusInternalServerError)
	r := NewRetrying(next, RetryConfig{MaxRetries: 2})
	noSleep(r)

	_, err := r.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrService)
	assert.Contains(t, err.Error(), "exceeded 2 retries")
	assert.Equal(t, 3, *calls)
}

func TestRetrying_PermanentErrorNotRetried(t *testing.T) {
	calls, next := flaky(10, http.StatusUnauthorized)
	r := NewRetrying(next, RetryConfig{MaxRetries: 5})
	noSleep(r)

	_, err := r.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, *calls)
}

func TestRetrying_PlainErrorNotRetried(t *testing.T) {
	calls := 0
	r := NewRetrying(CompleterFunc(func(context.Context, Request) (string, error) {
		calls++
		return "", errors.New("plain")
	}), RetryConfig{MaxRetries: 3})
	noSleep(r)

	_, err := r.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrying_ContextCancelledDuringBackoff(t *testing.T) {
	_, next := flaky(10, 0)
	r := NewRetrying(next, RetryConfig{MaxRetries: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Complete(ctx, Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServiceError_Temporary(t *testing.T) {
	tests := []struct {
		name string
		err  *ServiceError
		want bool
	}{
		{"network", &ServiceError{Err: errors.New("reset")}, true},
		{"rate limit", &ServiceError{StatusCode: 429, Err: errors.New("x")}, true},
		{"server", &ServiceError{StatusCode: 502, Err: errors.New("x")}, true},
		{"unauthorized", &ServiceError{StatusCode: 401, Err: errors.New("x")}, false},
		{"cancelled", &ServiceError{Err: context.Canceled}, false},
		{"deadline", &ServiceError{Err: context.DeadlineExceeded}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Temporary())
		})
	}
}

func TestServiceError_Error(t *testing.T) {
	err := serviceError("openai", 500, errors.New("oops"))
	assert.Equal(t, "openai: status 500: oops", err.Error())
	assert.ErrorIs(t, err, ErrService)

	err = serviceError("gemini", 0, errors.New("dial"))
	assert.Equal(t, "gemini: dial", err.Error())
}
