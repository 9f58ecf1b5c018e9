package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// Retrying wraps a Completer and retries temporary failures with
// exponential backoff and jitter.
type Retrying struct {
	next       Completer
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// RetryConfig configures the Retrying decorator.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	Logger     *slog.Logger
}

// NewRetrying wraps next with retry behaviour.
func NewRetrying(next Completer, cfg RetryConfig) *Retrying {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrying{
		next:       next,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
		logger:     logger,
		sleep:      sleepContext,
	}
}

// Complete calls the wrapped Completer until it succeeds, returns a
// permanent error, or the retry budget is spent.
func (r *Retrying) Complete(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		text, err := r.next.Complete(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isTemporary(err) {
			return "", err
		}
		if attempt == r.maxRetries {
			break
		}

		// delay = base * 2^attempt * [0.5, 1.0)
		backoff := float64(r.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rand.Float64()*0.5))

		r.logger.WarnContext(ctx, "completion failed, retrying",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		if err := r.sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("retry cancelled: %w", errors.Join(err, lastErr))
		}
	}

	return "", fmt.Errorf("exceeded %d retries: %w", r.maxRetries, lastErr)
}

func isTemporary(err error) bool {
	var t interface{ Temporary() bool }
	if errors.As(err, &t) {
		return t.Temporary()
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
