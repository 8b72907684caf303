package backoff

import (
	"time"

	cb "github.com/cenkalti/backoff/v4"
)

const (
	jitter      = 0.2
	maxAttempts = 30
)

// NewExponential doubles from base up to max with 20% jitter. It never
// stops on its own; bound it with cb.WithMaxRetries or a context.
func NewExponential(base, max time.Duration) *cb.ExponentialBackOff {
	if max < base {
		max = base
	}
	b := cb.NewExponentialBackOff()
	b.InitialInterval = base
	b.MaxInterval = max
	b.Multiplier = 2
	b.RandomizationFactor = jitter
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Delay returns the wait before the given zero-based retry.
func Delay(attempt int, base, max time.Duration) time.Duration {
	attempt = min(max0(attempt), maxAttempts)
	b := NewExponential(base, max)
	d := b.NextBackOff()
	for range attempt {
		d = b.NextBackOff()
	}
	return d
}

// Sleep waits for d or until done is closed. It reports whether the full
// duration elapsed.
func Sleep(done <-chan struct{}, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-done:
		return false
	case <-t.C:
		return true
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
