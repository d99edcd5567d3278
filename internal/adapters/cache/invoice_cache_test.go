package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/splitledger/internal/adapters/cache"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func book(memberID string) engine.InvoiceBook {
	return engine.InvoiceBook{Items: map[string][]domain.InvoiceItem{memberID: {}}}
}

func TestInvoiceCache_GetAdd(t *testing.T) {
	c := cache.NewInvoiceCache(10, time.Minute)
	key := portscache.NewInvoiceKey("wp-1", "user-1", domain.InvoiceFilter{})

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Add(key, book("m-1"))
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Contains(t, got.Items, "m-1")
}

func TestInvoiceCache_KeysDistinguishFilters(t *testing.T) {
	c := cache.NewInvoiceCache(10, time.Minute)
	trip := "trip-1"
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	all := portscache.NewInvoiceKey("wp-1", "user-1", domain.InvoiceFilter{})
	byTrip := portscache.NewInvoiceKey("wp-1", "user-1", domain.InvoiceFilter{TripID: &trip})
	byPeriod := portscache.NewInvoiceKey("wp-1", "user-1", domain.InvoiceFilter{From: &from})
	otherUser := portscache.NewInvoiceKey("wp-1", "user-2", domain.InvoiceFilter{})

	c.Add(all, book("all"))
	for _, k := range []portscache.InvoiceKey{byTrip, byPeriod, otherUser} {
		_, ok := c.Get(k)
		assert.False(t, ok, "%+v", k)
	}
}

func TestInvoiceCache_InvalidateWorkplace(t *testing.T) {
	c := cache.NewInvoiceCache(10, time.Minute)
	c.Add(portscache.NewInvoiceKey("wp-1", "user-1", domain.InvoiceFilter{}), book("a"))
	c.Add(portscache.NewInvoiceKey("wp-1", "user-2", domain.InvoiceFilter{}), book("b"))
	keep := portscache.NewInvoiceKey("wp-2", "user-1", domain.InvoiceFilter{})
	c.Add(keep, book("c"))

	removed := c.InvalidateWorkplace("wp-1")

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(keep)
	assert.True(t, ok)
}

func TestInvoiceCache_ObservesWrites(t *testing.T) {
	c := cache.NewInvoiceCache(10, time.Minute)
	key := portscache.NewInvoiceKey("wp-1", "user-1", domain.InvoiceFilter{})
	c.Add(key, book("a"))

	c.InvoicesChanged(context.Background(), portscache.InvoiceEvent{WorkplaceID: "wp-1", Reason: portscache.ReasonSplitsSettled})

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestInvoiceCache_Expires(t *testing.T) {
	c := cache.NewInvoiceCache(10, 20*time.Millisecond)
	key := portscache.NewInvoiceKey("wp-1", "user-1", domain.InvoiceFilter{})
	c.Add(key, book("a"))

	assert.Eventually(t, func() bool {
		_, ok := c.Get(key)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestChannelObserver(t *testing.T) {
	o := cache.NewChannelObserver(1, nil)
	ev := portscache.InvoiceEvent{WorkplaceID: "wp-1", Reason: portscache.ReasonSeriesCreated}

	o.InvoicesChanged(context.Background(), ev)
	o.InvoicesChanged(context.Background(), ev)

	assert.Equal(t, int64(1), o.Dropped())
	select {
	case got := <-o.Events():
		assert.Equal(t, "wp-1", got.WorkplaceID)
	default:
		t.Fatal("expected a buffered event")
	}
}
