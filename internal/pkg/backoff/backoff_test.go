//go:build unit

package backoff_test

import (
	"testing"
	"time"

	"nest/internal/pkg/backoff"

	"github.com/stretchr/testify/assert"
)

func TestDelay(t *testing.T) {
	base := 100 * time.Millisecond
	max := time.Second

	tests := []struct {
		name    string
		attempt int
		center  time.Duration
	}{
		{name: "first attempt uses base", attempt: 0, center: base},
		{name: "doubles per attempt", attempt: 2, center: 4 * base},
		{name: "capped at max", attempt: 10, center: max},
		{name: "negative attempt treated as zero", attempt: -3, center: base},
		{name: "huge attempt does not overflow", attempt: 200, center: max},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 20 {
				got := backoff.Delay(tt.attempt, base, max)
				assert.GreaterOrEqual(t, got, tt.center-tt.center/5)
				assert.LessOrEqual(t, got, tt.center+tt.center/5)
			}
		})
	}
}

func TestNewExponential(t *testing.T) {
	t.Run("never stops on its own", func(t *testing.T) {
		b := backoff.NewExponential(time.Millisecond, 4*time.Millisecond)
		for range 50 {
			assert.LessOrEqual(t, b.NextBackOff(), 5*time.Millisecond)
		}
	})

	t.Run("max below base is raised to base", func(t *testing.T) {
		b := backoff.NewExponential(10*time.Millisecond, 0)
		for range 5 {
			d := b.NextBackOff()
			assert.GreaterOrEqual(t, d, 8*time.Millisecond)
			assert.LessOrEqual(t, d, 12*time.Millisecond)
		}
	})
}

func TestSleep(t *testing.T) {
	t.Run("returns false when done closes first", func(t *testing.T) {
		done := make(chan struct{})
		close(done)
		assert.False(t, backoff.Sleep(done, time.Hour))
	})

	t.Run("returns true after the duration", func(t *testing.T) {
		assert.True(t, backoff.Sleep(make(chan struct{}), time.Millisecond))
	})
}
