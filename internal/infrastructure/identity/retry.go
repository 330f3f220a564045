package identity

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sirpyerre/account-portal/internal/core/domain"
	"github.com/sirpyerre/account-portal/internal/core/ports"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 250 * time.Millisecond
)

// RetryOptions configures RetryingVerifier.
type RetryOptions struct {
	// MaxAttempts is the total number of verification calls, including the first.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; each later wait doubles.
	BaseDelay time.Duration
	// OnRetry is called before each wait. attempt is 1-based and names the
	// attempt that just failed.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// RetryingVerifier retries clock-skew failures of the wrapped verifier with
// exponential backoff. Every other error is returned from the first attempt.
type RetryingVerifier struct {
	next        ports.IdentityVerifier
	maxAttempts int
	baseDelay   time.Duration
	onRetry     func(attempt int, delay time.Duration, err error)
}

func NewRetryingVerifier(next ports.IdentityVerifier, opts RetryOptions) *RetryingVerifier {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	return &RetryingVerifier{
		next:        next,
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
		onRetry:     opts.OnRetry,
	}
}

// Verify waits base, 2*base, 4*base ... between attempts. The wait stops
// early when ctx is done.
func (v *RetryingVerifier) Verify(ctx context.Context, idToken string) (*domain.Identity, error) {
	var (
		attempt int
		lastErr error
	)

	limited := retry.WithMaxRetries(uint64(v.maxAttempts-1), retry.NewExponential(v.baseDelay))
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		delay, stop := limited.Next()
		if !stop && v.onRetry != nil {
			v.onRetry(attempt, delay, lastErr)
		}
		return delay, stop
	})

	return retry.DoValue(ctx, backoff, func(ctx context.Context) (*domain.Identity, error) {
		attempt++
		identity, err := v.next.Verify(ctx, idToken)
		if err != nil {
			lastErr = err
			if IsClockSkew(err) {
				return nil, retry.RetryableError(err)
			}
			return nil, err
		}
		return identity, nil
	})
}
