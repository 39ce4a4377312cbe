package quote

import (
	"sync"
	"time"
)

type nameCacheItem struct {
	Name       string
	Expiration time.Time
}

// nameCache keeps resolved company names for a while so a persistent
// alert condition does not re-query the metadata endpoint every cycle.
type nameCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]*nameCacheItem
}

func newNameCache(ttl time.Duration) *nameCache {
	return &nameCache{
		ttl:   ttl,
		items: make(map[string]*nameCacheItem),
	}
}

func (c *nameCache) get(symbol string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, found := c.items[symbol]; found && time.Now().Before(item.Expiration) {
		return item.Name, true
	}
	return "", false
}

func (c *nameCache) set(symbol, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[symbol] = &nameCacheItem{
		Name:       name,
		Expiration: time.Now().Add(c.ttl),
	}
}
