package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
)

// invoiceService builds invoices and records settlements of shared expenses.
type invoiceService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	memberRepo      portsrepo.MemberReader
	cache           portscache.InvoiceCache
	observers       []portscache.InvoiceObserver
	now             func() time.Time
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceCache enables caching of built invoice books.
func WithInvoiceCache(cache portscache.InvoiceCache) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.cache = cache
	}
}

// WithInvoiceObservers registers observers notified after settlements are committed.
func WithInvoiceObservers(observers ...portscache.InvoiceObserver) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.observers = append(s.observers, observers...)
	}
}

// WithInvoiceClock overrides the time source used for settlement timestamps.
func WithInvoiceClock(now func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.now = now
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(transactionRepo portsrepo.TransactionRepositoryFacade, memberRepo portsrepo.MemberReader, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		transactionRepo: transactionRepo,
		memberRepo:      memberRepo,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) Invoices(ctx context.Context, workplaceID string, filter domain.InvoiceFilter, userID string) (*engine.InvoiceBook, error) {
	key := portscache.NewInvoiceKey(workplaceID, userID, filter)
	if s.cache != nil {
		if book, ok := s.cache.Get(key); ok {
			s.LogDebug(ctx, "Invoice cache hit", slog.String("workplace_id", workplaceID))
			return &book, nil
		}
	}

	snap, err := loadSnapshot(ctx, workplaceID, s.transactionRepo, nil, s.memberRepo)
	if err != nil {
		s.LogError(ctx, err, "Failed to load data for invoices",
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	book := engine.BuildInvoices(snap.Transactions, snap.Members, engine.InvoiceOptions{
		SelfUserID: userID,
		Filter:     filter,
	})
	s.LogIssues(ctx, "invoices", workplaceID, book.Issues)

	if s.cache != nil {
		s.cache.Add(key, book)
	}
	return &book, nil
}

func (s *invoiceService) SettleSplits(ctx context.Context, workplaceID string, transactionID string, req dto.SettleSplitsRequest, userID string) (*domain.Transaction, error) {
	tx, err := s.transactionRepo.FindTransactionByID(ctx, workplaceID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Transaction to settle not found", slog.String("transaction_id", transactionID))
		} else {
			s.LogError(ctx, err, "Failed to load transaction to settle", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if tx.Deleted {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if !tx.IsSharedExpense(userID) {
		return nil, fmt.Errorf("%w: transaction %s is not a shared expense", apperrors.ErrValidation, transactionID)
	}

	memberIDs, err := splitsToSettle(*tx, req.MemberIDs)
	if err != nil {
		s.LogDebug(ctx, "Rejected settlement request", slog.String("error", err.Error()))
		return nil, err
	}

	at := s.now().UTC()
	if err := s.transactionRepo.MarkSplitsSettled(ctx, workplaceID, transactionID, memberIDs, userID, at); err != nil {
		s.LogError(ctx, err, "Failed to mark splits settled",
			slog.String("workplace_id", workplaceID),
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	updated := applySettlement(*tx, memberIDs, userID, at)
	notify(ctx, s.observers, portscache.InvoiceEvent{
		WorkplaceID:    workplaceID,
		TransactionIDs: []string{transactionID},
		MemberIDs:      memberIDs,
		Reason:         portscache.ReasonSplitsSettled,
		At:             at,
	})

	s.LogInfo(ctx, "Splits settled",
		slog.String("workplace_id", workplaceID),
		slog.String("transaction_id", transactionID),
		slog.Int("splits", len(memberIDs)),
		slog.Bool("transaction_settled", updated.IsSettled))
	return &updated, nil
}

// splitsToSettle resolves the requested members against the open splits of tx.
// An empty request means every open split. Already settled splits are skipped.
func splitsToSettle(tx domain.Transaction, requested []string) ([]string, error) {
	open := make([]string, 0, len(tx.Splits))
	known := make(map[string]bool, len(tx.Splits))
	for _, sp := range tx.Splits {
		known[sp.MemberID] = true
		if !sp.IsSettled {
			open = append(open, sp.MemberID)
		}
	}
	if len(requested) == 0 {
		return open, nil
	}

	out := make([]string, 0, len(requested))
	for _, id := range requested {
		if !known[id] {
			return nil, fmt.Errorf("%w: member %s has no split in transaction %s", apperrors.ErrValidation, id, tx.TransactionID)
		}
		if slices.Contains(open, id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}

// applySettlement mirrors what MarkSplitsSettled persisted.
func applySettlement(tx domain.Transaction, memberIDs []string, userID string, at time.Time) domain.Transaction {
	out := tx.Clone()
	allSettled := true
	for i := range out.Splits {
		if slices.Contains(memberIDs, out.Splits[i].MemberID) {
			out.Splits[i].IsSettled = true
			settledAt := at
			out.Splits[i].SettledAt = &settledAt
		}
		allSettled = allSettled && out.Splits[i].IsSettled
	}
	if allSettled {
		out.IsSettled = true
	}
	out.LastUpdatedAt = at
	out.LastUpdatedBy = userID
	return out
}

func notify(ctx context.Context, observers []portscache.InvoiceObserver, event portscache.InvoiceEvent) {
	for _, o := range observers {
		o.InvoicesChanged(ctx, event)
	}
}
