package services

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/engine"
)

// LedgerReaderSvc defines balance queries over the transaction log
type LedgerReaderSvc interface {
	// Balances reconstructs every account of the workplace from its log.
	// A nil asOf means "everything"; otherwise the cutoff is the end of that day.
	Balances(ctx context.Context, workplaceID string, asOf *time.Time, userID string) (*engine.ReconstructionResult, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
}
