//go:build e2e

package greenlight_test

import (
	"context"
	"testing"
	"time"

	"nest/internal/infra/greenlight"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestFlag(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })
	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	flag := greenlight.NewFlag(client, "greenlight")

	open, err := flag.Open(ctx)
	require.NoError(t, err)
	assert.False(t, open, "missing key keeps the gate closed")

	require.NoError(t, flag.Set(ctx, true))
	open, err = flag.Open(ctx)
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, client.Set(ctx, "greenlight", "yes", 0).Err())
	open, err = flag.Open(ctx)
	require.NoError(t, err)
	assert.False(t, open, "only the value 1 opens the gate")
}
