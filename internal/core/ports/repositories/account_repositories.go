package repositories

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// ListAccounts retrieves every account of a workplace. Stored balances are
	// returned as-is; callers that need the truth reconstruct them from the log.
	ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
}
