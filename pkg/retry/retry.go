package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/pkg/logger"
)

// Config controls how often and how patiently an operation is retried.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
	// Retryable decides whether err is worth another attempt. Nil retries everything
	// except context cancellation.
	Retryable func(err error) bool
}

// DefaultConfig returns exponential backoff starting at 100ms.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// MailConfig is tuned for outbound email: few attempts, short waits, so
// request handlers that send inline are not held for long.
func MailConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxRetries = 2
	cfg.InitialDelay = 250 * time.Millisecond
	cfg.MaxDelay = 2 * time.Second
	return cfg
}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// attempts run out.
func Do(ctx context.Context, cfg Config, operation string, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				logger.Info("Operation succeeded after retry",
					zap.String("operation", operation),
					zap.Int("attempt", attempt))
			}
			return nil
		}
		lastErr = err

		if !cfg.retryable(err) {
			return err
		}
		if attempt == cfg.MaxRetries {
			break
		}

		delay := Delay(attempt, cfg)
		logger.Warn("Operation failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", cfg.MaxRetries),
			zap.Duration("delay", delay),
			zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	logger.Error("Operation failed after all retries",
		zap.String("operation", operation),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Error(lastErr))

	return fmt.Errorf("operation failed after %d retries: %w", cfg.MaxRetries, lastErr)
}

func (c Config) retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if c.Retryable == nil {
		return true
	}
	return c.Retryable(err)
}

// Delay returns the wait before retry number attempt+1.
func Delay(attempt int, cfg Config) time.Duration {
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}

	// +/-25%
	if cfg.Jitter {
		jitterRange := delay * 0.25
		//nolint:gosec // G404: jitter does not need crypto/rand
		delay += (rand.Float64() * 2 * jitterRange) - jitterRange
	}

	return time.Duration(delay)
}
