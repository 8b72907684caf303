//go:build unit

package queries

import (
	"sync"
	"testing"
	"time"

	"nest/internal/domain/entitlement"
	"nest/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLedgerCache_Store(t *testing.T) {
	cfg := config.QueryConfig{CacheSize: 16, CacheTTL: time.Minute}

	t.Run("current generation is stored", func(t *testing.T) {
		c := NewLedgerCache(cfg)
		l := entitlement.Ledger{UserID: uuid.New()}

		assert.True(t, c.store(c.generationNow(), "buyer@example.com", l))
		got, ok := c.lookup("buyer@example.com")
		assert.True(t, ok)
		assert.Equal(t, l.UserID, got.UserID)
	})

	t.Run("load read before an invalidation is refused", func(t *testing.T) {
		c := NewLedgerCache(cfg)
		userID := uuid.New()
		gen := c.generationNow()

		c.InvalidateUser(userID)

		assert.False(t, c.store(gen, "buyer@example.com", entitlement.Ledger{UserID: userID}))
		assert.Zero(t, c.Len())
	})

	t.Run("stores racing invalidations never outlive them", func(t *testing.T) {
		c := NewLedgerCache(cfg)
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				for range 200 {
					gen := c.generationNow()
					c.store(gen, "buyer@example.com", entitlement.Ledger{UserID: uuid.New()})
				}
			}()
			go func() {
				defer wg.Done()
				for range 200 {
					if i%2 == 0 {
						c.InvalidateAll()
					} else {
						c.InvalidateUser(uuid.New())
					}
				}
			}()
		}
		wg.Wait()

		stale := c.generationNow()
		c.InvalidateAll()
		assert.Zero(t, c.Len())
		assert.False(t, c.store(stale, "buyer@example.com", entitlement.Ledger{UserID: uuid.New()}))
	})
}
