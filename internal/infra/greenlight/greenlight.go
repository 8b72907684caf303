package greenlight

import (
	"context"

	"nest/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Flag reads the operator-controlled switch that lets webhooks in. Only the
// exact value "1" opens it; a missing key keeps it closed.
type Flag struct {
	client redis.UniversalClient
	key    string
}

func NewFlag(client redis.UniversalClient, key string) *Flag {
	return &Flag{client: client, key: key}
}

func (f *Flag) Open(ctx context.Context) (bool, error) {
	v, err := f.client.Get(ctx, f.key).Result()
	if errs.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrapf(err, "read greenlight flag %s", f.key)
	}
	return v == "1", nil
}

func (f *Flag) Set(ctx context.Context, open bool) error {
	v := "0"
	if open {
		v = "1"
	}
	if err := f.client.Set(ctx, f.key, v, 0).Err(); err != nil {
		return errs.Wrapf(err, "write greenlight flag %s", f.key)
	}
	return nil
}
