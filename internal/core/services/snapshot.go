package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"golang.org/x/sync/errgroup"
)

// workplaceSnapshot is everything an engine pass needs about one workplace.
type workplaceSnapshot struct {
	Accounts     []domain.Account
	Transactions []domain.Transaction
	Members      []domain.Member
}

// loadSnapshot reads the log and, when the readers are non-nil, the accounts
// and roster of a workplace concurrently.
func loadSnapshot(
	ctx context.Context,
	workplaceID string,
	txReader portsrepo.TransactionReader,
	accountReader portsrepo.AccountReader,
	memberReader portsrepo.MemberReader,
) (*workplaceSnapshot, error) {
	snap := &workplaceSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txs, err := txReader.ListTransactions(gctx, workplaceID)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		snap.Transactions = txs
		return nil
	})
	if accountReader != nil {
		g.Go(func() error {
			accounts, err := accountReader.ListAccounts(gctx, workplaceID)
			if err != nil {
				return fmt.Errorf("failed to load accounts: %w", err)
			}
			snap.Accounts = accounts
			return nil
		})
	}
	if memberReader != nil {
		g.Go(func() error {
			members, err := memberReader.ListMembers(gctx, workplaceID)
			if err != nil {
				return fmt.Errorf("failed to load members: %w", err)
			}
			snap.Members = members
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
