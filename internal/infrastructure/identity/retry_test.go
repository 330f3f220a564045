package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

type scriptedVerifier struct {
	errs  []error
	calls int
}

func (s *scriptedVerifier) Verify(_ context.Context, _ string) (*domain.Identity, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return &domain.Identity{UID: "uid-1"}, nil
}

var errTooEarly = errors.New("Token used too early, 1700000001 < 1700000000")

func TestRetryingVerifier_SucceedsAfterClockSkew(t *testing.T) {
	next := &scriptedVerifier{errs: []error{errTooEarly, errTooEarly}}

	var delays []time.Duration
	v := NewRetryingVerifier(next, RetryOptions{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			if attempt != len(delays)+1 {
				t.Errorf("unexpected attempt number %d", attempt)
			}
			if !errors.Is(err, errTooEarly) {
				t.Errorf("unexpected retry cause: %v", err)
			}
			delays = append(delays, delay)
		},
	})

	identity, err := v.Verify(context.Background(), "token")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if identity.UID != "uid-1" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if next.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", next.calls)
	}
	want := []time.Duration{time.Millisecond, 2 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("expected delays %v, got %v", want, delays)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Fatalf("expected delays %v, got %v", want, delays)
		}
	}
}

func TestRetryingVerifier_ExhaustsAttempts(t *testing.T) {
	next := &scriptedVerifier{errs: []error{errTooEarly, errTooEarly, errTooEarly, errTooEarly}}
	retries := 0
	v := NewRetryingVerifier(next, RetryOptions{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		OnRetry:     func(int, time.Duration, error) { retries++ },
	})

	_, err := v.Verify(context.Background(), "token")
	if !errors.Is(err, errTooEarly) {
		t.Fatalf("expected the clock-skew error, got %v", err)
	}
	if next.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", next.calls)
	}
	if retries != 2 {
		t.Fatalf("expected 2 waits, got %d", retries)
	}
}

func TestRetryingVerifier_OtherErrorsAreNotRetried(t *testing.T) {
	expired := errors.New("ID token has expired at: 1700000000")
	next := &scriptedVerifier{errs: []error{expired}}
	v := NewRetryingVerifier(next, RetryOptions{
		MaxAttempts: 7,
		BaseDelay:   time.Millisecond,
		OnRetry: func(int, time.Duration, error) {
			t.Fatalf("must not wait for a non clock-skew error")
		},
	})

	_, err := v.Verify(context.Background(), "token")
	if !errors.Is(err, expired) {
		t.Fatalf("expected expired error, got %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", next.calls)
	}
}

func TestRetryingVerifier_SingleAttempt(t *testing.T) {
	next := &scriptedVerifier{errs: []error{errTooEarly}}
	v := NewRetryingVerifier(next, RetryOptions{MaxAttempts: 1, BaseDelay: time.Millisecond})

	if _, err := v.Verify(context.Background(), "token"); !errors.Is(err, errTooEarly) {
		t.Fatalf("expected clock-skew error, got %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", next.calls)
	}
}

func TestRetryingVerifier_ContextCancelledDuringWait(t *testing.T) {
	next := &scriptedVerifier{errs: []error{errTooEarly, errTooEarly}}
	v := NewRetryingVerifier(next, RetryOptions{MaxAttempts: 3, BaseDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := v.Verify(ctx, "token")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("wait did not stop on cancellation")
	}
	if next.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", next.calls)
	}
}

func TestNewRetryingVerifier_Defaults(t *testing.T) {
	v := NewRetryingVerifier(&scriptedVerifier{}, RetryOptions{})
	if v.maxAttempts != DefaultMaxAttempts || v.baseDelay != DefaultBaseDelay {
		t.Fatalf("unexpected defaults: %d %s", v.maxAttempts, v.baseDelay)
	}
}
