package lock

import (
	"context"
	"time"

	"nest/internal/pkg/clock"
	"nest/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var renewScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 0
`)

var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client redis.UniversalClient
	clock  clock.Clock
}

func NewRedisLocker(client redis.UniversalClient, clk clock.Clock) *RedisLocker {
	return &RedisLocker{client: client, clock: clk}
}

func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	token := uuid.NewString()
	now := r.clock.Now()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return Lease{}, errs.Wrapf(err, "acquire %s", key)
	}
	if !ok {
		return Lease{}, errs.Mark(errs.Newf("lock %s is held", key), errs.ErrLockBusy)
	}
	return NewLease(key, token, now.Add(ttl)), nil
}

func (r *RedisLocker) Renew(ctx context.Context, lease Lease, ttl time.Duration) (Lease, error) {
	now := r.clock.Now()

	res, err := renewScript.Run(ctx, r.client, []string{lease.key}, lease.token, ttl.Milliseconds()).Int()
	if err != nil {
		return lease, errs.Wrapf(err, "renew %s", lease.key)
	}
	if res != 1 {
		return lease, errs.Mark(errs.Newf("lease on %s lost", lease.key), errs.ErrLockExpired)
	}
	return lease.withExpiry(now.Add(ttl)), nil
}

func (r *RedisLocker) Release(ctx context.Context, lease Lease) error {
	res, err := releaseScript.Run(ctx, r.client, []string{lease.key}, lease.token).Int()
	if err != nil {
		return errs.Wrapf(err, "release %s", lease.key)
	}
	if res != 1 {
		return errs.Mark(errs.Newf("lease on %s not owned", lease.key), errs.ErrLockNotOwner)
	}
	return nil
}
