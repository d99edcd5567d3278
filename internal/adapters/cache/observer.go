package cache

import (
	"context"
	"log/slog"
	"sync/atomic"

	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
)

// ChannelObserver forwards invoice events to a buffered channel so that other
// parts of the process can react to them. When the buffer is full the event is
// dropped and counted; writers are never blocked.
type ChannelObserver struct {
	events  chan portscache.InvoiceEvent
	dropped atomic.Int64
	logger  *slog.Logger
}

// NewChannelObserver creates an observer with the given buffer size.
func NewChannelObserver(buffer int, logger *slog.Logger) *ChannelObserver {
	if buffer < 0 {
		buffer = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChannelObserver{
		events: make(chan portscache.InvoiceEvent, buffer),
		logger: logger,
	}
}

var _ portscache.InvoiceObserver = (*ChannelObserver)(nil)

func (o *ChannelObserver) InvoicesChanged(_ context.Context, event portscache.InvoiceEvent) {
	select {
	case o.events <- event:
	default:
		o.dropped.Add(1)
		o.logger.Warn("Invoice event dropped, subscriber is not keeping up",
			slog.String("workplace_id", event.WorkplaceID),
			slog.String("reason", string(event.Reason)))
	}
}

// Events returns the receive side of the event stream.
func (o *ChannelObserver) Events() <-chan portscache.InvoiceEvent {
	return o.events
}

// Dropped reports how many events were discarded because the buffer was full.
func (o *ChannelObserver) Dropped() int64 {
	return o.dropped.Load()
}

// Drain logs every event until ctx is done. It is meant to run in its own goroutine.
func (o *ChannelObserver) Drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-o.events:
			o.logger.Info("Invoices changed",
				slog.String("workplace_id", ev.WorkplaceID),
				slog.String("reason", string(ev.Reason)),
				slog.Int("transactions", len(ev.TransactionIDs)),
				slog.Int("members", len(ev.MemberIDs)))
		}
	}
}
