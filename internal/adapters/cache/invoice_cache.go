package cache

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/engine"
	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultInvoiceCacheSize = 256
	DefaultInvoiceCacheTTL  = 5 * time.Minute
)

// LRUInvoiceCache is a size-bounded invoice cache whose entries expire after a TTL.
// It also observes invoice writes and drops the books of the affected workplace.
type LRUInvoiceCache struct {
	lru *expirable.LRU[portscache.InvoiceKey, engine.InvoiceBook]
}

// NewInvoiceCache creates a cache holding up to size books for ttl each.
// Non-positive arguments fall back to the defaults.
func NewInvoiceCache(size int, ttl time.Duration) *LRUInvoiceCache {
	if size <= 0 {
		size = DefaultInvoiceCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultInvoiceCacheTTL
	}
	return &LRUInvoiceCache{
		lru: expirable.NewLRU[portscache.InvoiceKey, engine.InvoiceBook](size, nil, ttl),
	}
}

var (
	_ portscache.InvoiceCache    = (*LRUInvoiceCache)(nil)
	_ portscache.InvoiceObserver = (*LRUInvoiceCache)(nil)
)

func (c *LRUInvoiceCache) Get(key portscache.InvoiceKey) (engine.InvoiceBook, bool) {
	return c.lru.Get(key)
}

func (c *LRUInvoiceCache) Add(key portscache.InvoiceKey, book engine.InvoiceBook) {
	c.lru.Add(key, book)
}

func (c *LRUInvoiceCache) InvalidateWorkplace(workplaceID string) int {
	removed := 0
	for _, key := range c.lru.Keys() {
		if key.WorkplaceID == workplaceID && c.lru.Remove(key) {
			removed++
		}
	}
	return removed
}

// Len reports the number of live entries.
func (c *LRUInvoiceCache) Len() int {
	return c.lru.Len()
}

// InvoicesChanged drops the cached books of the workplace named by the event.
func (c *LRUInvoiceCache) InvoicesChanged(_ context.Context, event portscache.InvoiceEvent) {
	c.InvalidateWorkplace(event.WorkplaceID)
}
