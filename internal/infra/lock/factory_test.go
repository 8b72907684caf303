//go:build unit

package lock_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nest/internal/infra/lock"
	"nest/internal/pkg/clock"
	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLocker is an in-process Locker. Expiry is driven by the test, not by time.
type memLocker struct {
	mu       sync.Mutex
	held     map[string]string
	renewErr error
	acqErr   error
	acquires atomic.Int32
	renews   atomic.Int32
	releases atomic.Int32
}

func newMemLocker() *memLocker {
	return &memLocker{held: map[string]string{}}
}

func (m *memLocker) Acquire(_ context.Context, key string, ttl time.Duration) (lock.Lease, error) {
	m.acquires.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.acqErr != nil {
		return lock.Lease{}, m.acqErr
	}
	if _, ok := m.held[key]; ok {
		return lock.Lease{}, errs.Mark(errs.Newf("%s held", key), errs.ErrLockBusy)
	}
	token := uuid.NewString()
	m.held[key] = token
	return lock.NewLease(key, token, time.Now().Add(ttl)), nil
}

func (m *memLocker) Renew(_ context.Context, l lock.Lease, ttl time.Duration) (lock.Lease, error) {
	m.renews.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renewErr != nil {
		return l, m.renewErr
	}
	if m.held[l.Key()] != l.Token() {
		return l, errs.Mark(errs.New("lost"), errs.ErrLockExpired)
	}
	return lock.NewLease(l.Key(), l.Token(), time.Now().Add(ttl)), nil
}

func (m *memLocker) Release(_ context.Context, l lock.Lease) error {
	m.releases.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[l.Key()] != l.Token() {
		return errs.Mark(errs.New("not owner"), errs.ErrLockNotOwner)
	}
	delete(m.held, l.Key())
	return nil
}

func (m *memLocker) isHeld(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.held[key]
	return ok
}

func (m *memLocker) steal(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[key] = "someone-else"
}

func (m *memLocker) failRenewals(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renewErr = err
}

func lockConfig() config.LockConfig {
	return config.LockConfig{
		KeyPrefix:   "test:",
		LeaseTTL:    30 * time.Millisecond,
		MaxAttempts: 3,
		BackoffBase: time.Millisecond,
		BackoffMax:  5 * time.Millisecond,
	}
}

func newFactory(locker lock.Locker) *lock.Factory {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return lock.NewFactory(locker, lockConfig(), clock.NewRealClock(), logger)
}

func TestFactory_WithLock(t *testing.T) {
	ctx := context.Background()

	t.Run("runs fn under the prefixed key and releases", func(t *testing.T) {
		locker := newMemLocker()
		f := newFactory(locker)

		var heldDuring bool
		err := f.WithLock(ctx, "order:ORD-1", func(ctx context.Context) error {
			heldDuring = locker.isHeld("test:order:ORD-1")
			return nil
		})

		require.NoError(t, err)
		assert.True(t, heldDuring)
		assert.False(t, locker.isHeld("test:order:ORD-1"))
		assert.EqualValues(t, 1, locker.releases.Load())
	})

	t.Run("busy after bounded attempts", func(t *testing.T) {
		locker := newMemLocker()
		locker.steal("test:order:ORD-1")
		f := newFactory(locker)

		called := false
		err := f.WithLock(ctx, "order:ORD-1", func(ctx context.Context) error {
			called = true
			return nil
		})

		assert.True(t, errs.Is(err, errs.ErrLockBusy))
		assert.False(t, called)
		assert.EqualValues(t, 3, locker.acquires.Load())
		assert.EqualValues(t, 0, locker.releases.Load())
	})

	t.Run("store errors are not retried", func(t *testing.T) {
		locker := newMemLocker()
		locker.acqErr = assert.AnError
		f := newFactory(locker)

		err := f.WithLock(ctx, "k", func(ctx context.Context) error { return nil })

		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, errs.Is(err, errs.ErrLockBusy))
		assert.EqualValues(t, 1, locker.acquires.Load())
	})

	t.Run("fn error is returned and the lease released", func(t *testing.T) {
		locker := newMemLocker()
		f := newFactory(locker)

		err := f.WithLock(ctx, "k", func(ctx context.Context) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, locker.isHeld("test:k"))
	})

	t.Run("panic releases the lease", func(t *testing.T) {
		locker := newMemLocker()
		f := newFactory(locker)

		assert.Panics(t, func() {
			_ = f.WithLock(ctx, "k", func(ctx context.Context) error {
				panic("boom")
			})
		})
		assert.False(t, locker.isHeld("test:k"))
	})

	t.Run("renews while fn runs", func(t *testing.T) {
		locker := newMemLocker()
		f := newFactory(locker)

		err := f.WithLock(ctx, "k", func(ctx context.Context) error {
			time.Sleep(80 * time.Millisecond)
			return ctx.Err()
		})

		require.NoError(t, err)
		assert.GreaterOrEqual(t, locker.renews.Load(), int32(2))
	})

	t.Run("lost lease cancels fn with ErrLockExpired", func(t *testing.T) {
		locker := newMemLocker()
		f := newFactory(locker)

		err := f.WithLock(ctx, "k", func(ctx context.Context) error {
			locker.steal("test:k")
			select {
			case <-ctx.Done():
				assert.True(t, errs.Is(context.Cause(ctx), errs.ErrLockExpired))
				return ctx.Err()
			case <-time.After(time.Second):
				return nil
			}
		})

		assert.True(t, errs.Is(err, errs.ErrLockExpired))
	})

	t.Run("transient renewal failure past expiry cancels fn", func(t *testing.T) {
		locker := newMemLocker()
		f := newFactory(locker)

		err := f.WithLock(ctx, "k", func(ctx context.Context) error {
			locker.failRenewals(assert.AnError)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
				return nil
			}
		})

		assert.True(t, errs.Is(err, errs.ErrLockExpired))
	})

	t.Run("not owner at release is not an error", func(t *testing.T) {
		locker := newMemLocker()
		f := newFactory(locker)

		err := f.WithLock(ctx, "k", func(ctx context.Context) error {
			locker.mu.Lock()
			delete(locker.held, "test:k")
			locker.mu.Unlock()
			return nil
		})

		assert.NoError(t, err)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		locker := newMemLocker()
		locker.steal("test:k")
		cfg := lockConfig()
		cfg.MaxAttempts = 100
		cfg.BackoffBase = time.Second
		cfg.BackoffMax = time.Second
		f := lock.NewFactory(locker, cfg, clock.NewRealClock(), slog.New(slog.NewTextHandler(io.Discard, nil)))

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		err := f.WithLock(cctx, "k", func(ctx context.Context) error { return nil })

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("serializes holders of the same key", func(t *testing.T) {
		locker := newMemLocker()
		cfg := lockConfig()
		cfg.MaxAttempts = 50
		f := lock.NewFactory(locker, cfg, clock.NewRealClock(), slog.New(slog.NewTextHandler(io.Discard, nil)))

		var inside, maxInside atomic.Int32
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = f.WithLock(ctx, "k", func(ctx context.Context) error {
					n := inside.Add(1)
					if n > maxInside.Load() {
						maxInside.Store(n)
					}
					time.Sleep(2 * time.Millisecond)
					inside.Add(-1)
					return nil
				})
			}()
		}
		wg.Wait()

		assert.EqualValues(t, 1, maxInside.Load())
	})
}
