package marketdata

import (
	"sync"
	"time"

	"github.com/paperstreet/tradetalk/internal/models"
)

// quoteCache is a small time-evicted cache for recently resolved quotes.
// Purely an optimization: never the source of truth, bounded in size, and
// entries past their TTL are discarded on read.
type quoteCache struct {
	mu      sync.RWMutex
	entries map[string]*cachedQuote
	ttl     time.Duration
	maxSize int
}

type cachedQuote struct {
	record   *models.QuoteRecord
	cachedAt time.Time
}

func newQuoteCache(ttl time.Duration, maxSize int) *quoteCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &quoteCache{
		entries: make(map[string]*cachedQuote),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

func (c *quoteCache) get(symbol string) (*models.QuoteRecord, bool) {
	c.mu.RLock()
	entry, ok := c.entries[symbol]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(entry.cachedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, symbol)
		c.mu.Unlock()
		return nil, false
	}
	return entry.record, true
}

func (c *quoteCache) set(symbol string, record *models.QuoteRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		// Evict expired entries first; if still full, drop the oldest.
		oldestKey := ""
		var oldestAt time.Time
		for key, entry := range c.entries {
			if time.Since(entry.cachedAt) > c.ttl {
				delete(c.entries, key)
				continue
			}
			if oldestKey == "" || entry.cachedAt.Before(oldestAt) {
				oldestKey, oldestAt = key, entry.cachedAt
			}
		}
		if len(c.entries) >= c.maxSize && oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[symbol] = &cachedQuote{record: record, cachedAt: time.Now()}
}
