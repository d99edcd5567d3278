package cache

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
)

// InvoiceKey identifies one cached invoice book. It is comparable so it can be
// used directly as a map or LRU key.
type InvoiceKey struct {
	WorkplaceID string
	UserID      string
	TripID      string
	From        string
	To          string
	Status      domain.InvoiceStatus
}

// NewInvoiceKey builds the cache key of an invoice query.
func NewInvoiceKey(workplaceID, userID string, filter domain.InvoiceFilter) InvoiceKey {
	key := InvoiceKey{WorkplaceID: workplaceID, UserID: userID, Status: filter.Status}
	if filter.TripID != nil {
		key.TripID = *filter.TripID
	}
	if filter.From != nil {
		key.From = filter.From.Format(time.DateOnly)
	}
	if filter.To != nil {
		key.To = filter.To.Format(time.DateOnly)
	}
	return key
}

// InvoiceCache stores derived invoice books. Books handed out by Get are shared
// and must be treated as read-only.
type InvoiceCache interface {
	Get(key InvoiceKey) (engine.InvoiceBook, bool)
	Add(key InvoiceKey, book engine.InvoiceBook)
	// InvalidateWorkplace drops every book of a workplace and returns how many were dropped.
	InvalidateWorkplace(workplaceID string) int
}

// InvoiceChangeReason says what kind of write made cached invoices stale.
type InvoiceChangeReason string

const (
	ReasonSplitsSettled InvoiceChangeReason = "SPLITS_SETTLED"
	ReasonSeriesCreated InvoiceChangeReason = "SERIES_CREATED"
)

// InvoiceEvent describes a committed write that affects invoices.
type InvoiceEvent struct {
	WorkplaceID    string
	TransactionIDs []string
	MemberIDs      []string
	Reason         InvoiceChangeReason
	At             time.Time
}

// InvoiceObserver is notified after invoice-affecting writes are committed.
// Implementations must not block.
type InvoiceObserver interface {
	InvoicesChanged(ctx context.Context, event InvoiceEvent)
}
