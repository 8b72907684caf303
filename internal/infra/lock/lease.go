package lock

import (
	"context"
	"time"
)

// Lease is proof of holding a key until ExpiresAt. Only the holder of the
// token can renew or release it.
type Lease struct {
	key       string
	token     string
	expiresAt time.Time
}

func NewLease(key, token string, expiresAt time.Time) Lease {
	return Lease{key: key, token: token, expiresAt: expiresAt}
}

func (l Lease) Key() string          { return l.key }
func (l Lease) Token() string        { return l.token }
func (l Lease) ExpiresAt() time.Time { return l.expiresAt }

func (l Lease) withExpiry(at time.Time) Lease {
	l.expiresAt = at
	return l
}

// Locker grants exclusive, expiring leases on keys.
type Locker interface {
	// Acquire fails with errs.ErrLockBusy when another holder owns key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
	// Renew fails with errs.ErrLockExpired when the lease is no longer held.
	Renew(ctx context.Context, lease Lease, ttl time.Duration) (Lease, error)
	// Release fails with errs.ErrLockNotOwner when the lease is no longer held.
	Release(ctx context.Context, lease Lease) error
}
