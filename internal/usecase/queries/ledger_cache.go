package queries

import (
	"sync"

	"nest/internal/domain/entitlement"
	"nest/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LedgerCache holds recently resolved ledgers keyed by user id. Any
// invalidation bumps a generation so a load that raced with it is not stored.
type LedgerCache struct {
	mu         sync.Mutex
	ledgers    *expirable.LRU[uuid.UUID, entitlement.Ledger]
	users      *expirable.LRU[string, uuid.UUID]
	generation uint64
}

func NewLedgerCache(cfg config.QueryConfig) *LedgerCache {
	size := cfg.CacheSize
	if size <= 0 {
		size = 1024
	}
	return &LedgerCache{
		ledgers: expirable.NewLRU[uuid.UUID, entitlement.Ledger](size, nil, cfg.CacheTTL),
		users:   expirable.NewLRU[string, uuid.UUID](size, nil, cfg.CacheTTL),
	}
}

func (c *LedgerCache) generationNow() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *LedgerCache) lookup(email string) (entitlement.Ledger, bool) {
	id, ok := c.users.Get(email)
	if !ok {
		return entitlement.Ledger{}, false
	}
	return c.ledgers.Get(id)
}

// store drops the entry when an invalidation happened since gen was read.
func (c *LedgerCache) store(gen uint64, email string, l entitlement.Ledger) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return false
	}
	c.users.Add(email, l.UserID)
	c.ledgers.Add(l.UserID, l)
	return true
}

func (c *LedgerCache) InvalidateUser(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.ledgers.Remove(userID)
}

func (c *LedgerCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.ledgers.Purge()
}

func (c *LedgerCache) Len() int {
	return c.ledgers.Len()
}
