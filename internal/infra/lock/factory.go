package lock

import (
	"context"
	"log/slog"
	"time"

	"nest/internal/pkg/backoff"
	"nest/internal/pkg/clock"
	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"

	cb "github.com/cenkalti/backoff/v4"
)

const releaseTimeout = 2 * time.Second

// Factory scopes a lease to one function call.
type Factory struct {
	locker Locker
	cfg    config.LockConfig
	clock  clock.Clock
	logger *slog.Logger
}

func NewFactory(locker Locker, cfg config.LockConfig, clk clock.Clock, logger *slog.Logger) *Factory {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Factory{
		locker: locker,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

// WithLock runs fn while holding the lease on key.
//
// Acquisition is retried with jittered exponential backoff and fails with
// errs.ErrLockBusy once MaxAttempts is spent. The lease is renewed every
// LeaseTTL/3; if renewal fails, fn's context is cancelled with cause
// errs.ErrLockExpired. The lease is released on every exit path, including
// panics, using a context detached from ctx.
func (f *Factory) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lease, err := f.acquire(ctx, f.cfg.KeyPrefix+key)
	if err != nil {
		return err
	}

	lockCtx, cancel := context.WithCancelCause(ctx)
	stop := make(chan struct{})
	renewed := make(chan struct{})
	go func() {
		defer close(renewed)
		f.keepAlive(lockCtx, cancel, lease, stop)
	}()

	defer func() {
		close(stop)
		<-renewed
		cancel(nil)
		f.release(ctx, lease)
	}()

	err = fn(lockCtx)
	if cause := context.Cause(lockCtx); errs.Is(cause, errs.ErrLockExpired) {
		if err != nil {
			return errs.Mark(errs.Wrapf(err, "lease on %s expired", key), errs.ErrLockExpired)
		}
		f.logger.Warn("lease expired after work completed", "key", key)
	}
	return err
}

func (f *Factory) acquire(ctx context.Context, key string) (Lease, error) {
	var (
		lease    Lease
		attempts int
	)
	policy := cb.WithContext(
		cb.WithMaxRetries(backoff.NewExponential(f.cfg.BackoffBase, f.cfg.BackoffMax), uint64(f.cfg.MaxAttempts-1)),
		ctx,
	)
	err := cb.RetryNotify(func() error {
		attempts++
		l, err := f.locker.Acquire(ctx, key, f.cfg.LeaseTTL)
		if err == nil {
			lease = l
			return nil
		}
		if !errs.Is(err, errs.ErrLockBusy) {
			return cb.Permanent(err)
		}
		return err
	}, policy, func(_ error, wait time.Duration) {
		f.logger.Debug("lock busy, backing off", "key", key, "attempt", attempts, "wait_ms", wait.Milliseconds())
	})

	switch {
	case err == nil:
		return lease, nil
	case errs.Is(err, errs.ErrLockBusy):
		return Lease{}, errs.Wrapf(err, "gave up after %d attempts", attempts)
	case ctx.Err() != nil && errs.Is(err, ctx.Err()):
		return Lease{}, errs.Wrapf(err, "waiting for %s", key)
	default:
		return Lease{}, err
	}
}

func (f *Factory) keepAlive(ctx context.Context, cancel context.CancelCauseFunc, lease Lease, stop <-chan struct{}) {
	interval := f.cfg.LeaseTTL / 3
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		renewed, err := f.locker.Renew(ctx, lease, f.cfg.LeaseTTL)
		if err == nil {
			lease = renewed
			continue
		}
		if errs.Is(err, errs.ErrLockExpired) || !f.clock.Now().Before(lease.ExpiresAt()) {
			f.logger.Warn("lease lost, cancelling holder", "key", lease.Key(), "error", err.Error())
			cancel(errs.ErrLockExpired)
			return
		}
		// Transient failure; the lease is still valid until ExpiresAt.
		f.logger.Warn("lease renewal failed, retrying", "key", lease.Key(), "error", err.Error())
	}
}

func (f *Factory) release(ctx context.Context, lease Lease) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	err := f.locker.Release(releaseCtx, lease)
	switch {
	case err == nil:
	case errs.Is(err, errs.ErrLockNotOwner):
		f.logger.Warn("lease was not owned at release", "key", lease.Key())
	default:
		f.logger.Warn("failed to release lease, it will expire", "key", lease.Key(), "error", err.Error())
	}
}
