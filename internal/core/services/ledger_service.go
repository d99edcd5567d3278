package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/splitledger/internal/core/engine"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

// ledgerService reconstructs account balances from the transaction log.
type ledgerService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
	memberRepo      portsrepo.MemberReader
}

// NewLedgerService creates a new ledger service. The roster read through
// memberRepo lets expenses paid under the caller's member ID count as their own.
func NewLedgerService(accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionReader, memberRepo portsrepo.MemberReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		memberRepo:      memberRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) Balances(ctx context.Context, workplaceID string, asOf *time.Time, userID string) (*engine.ReconstructionResult, error) {
	snap, err := loadSnapshot(ctx, workplaceID, s.transactionRepo, s.accountRepo, s.memberRepo)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for balance reconstruction",
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	res := engine.Reconstruct(snap.Accounts, snap.Transactions, engine.ReconstructOptions{
		Cutoff:     asOf,
		SelfUserID: userID,
		Members:    snap.Members,
	})
	s.LogIssues(ctx, "balances", workplaceID, res.Issues)

	s.LogDebug(ctx, "Balances reconstructed",
		slog.String("workplace_id", workplaceID),
		slog.Int("accounts", len(res.Accounts)),
		slog.Int("transactions", len(snap.Transactions)),
		slog.Int("issues", len(res.Issues)))
	return &res, nil
}
