package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// TransactionReader defines read operations over the transaction log
type TransactionReader interface {
	// ListTransactions returns the full log of a workplace, soft-deleted records
	// included, ordered by date, creation time and ID.
	ListTransactions(ctx context.Context, workplaceID string) ([]domain.Transaction, error)

	// FindTransactionByID retrieves one record with its splits.
	FindTransactionByID(ctx context.Context, workplaceID string, transactionID string) (*domain.Transaction, error)
}

// TransactionWriter defines the write operations the ledger needs
type TransactionWriter interface {
	// SaveInstallmentSeries persists every installment of a series atomically.
	SaveInstallmentSeries(ctx context.Context, series []domain.Transaction) error

	// MarkSplitsSettled flags the given member splits as settled at the given time.
	// When every split ends up settled the transaction itself is flagged as well.
	MarkSplitsSettled(ctx context.Context, workplaceID string, transactionID string, memberIDs []string, userID string, at time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
