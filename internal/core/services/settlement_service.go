package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/splitledger/internal/core/engine"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

// settlementService nets outstanding shared expenses into payment instructions.
type settlementService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
	memberRepo      portsrepo.MemberReader
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(transactionRepo portsrepo.TransactionReader, memberRepo portsrepo.MemberReader) portssvc.SettlementSvcFacade {
	return &settlementService{
		transactionRepo: transactionRepo,
		memberRepo:      memberRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) Plan(ctx context.Context, workplaceID string, userID string) (*engine.SettlementPlan, error) {
	snap, err := loadSnapshot(ctx, workplaceID, s.transactionRepo, nil, s.memberRepo)
	if err != nil {
		s.LogError(ctx, err, "Failed to load data for settlement",
			slog.String("workplace_id", workplaceID))
		return nil, err
	}

	plan := engine.ComputeSettlement(snap.Transactions, snap.Members, engine.SettlementOptions{SelfUserID: userID})
	s.LogIssues(ctx, "settlement", workplaceID, plan.Issues)

	s.LogDebug(ctx, "Settlement computed",
		slog.String("workplace_id", workplaceID),
		slog.Int("lines", len(plan.Lines)))
	return &plan, nil
}
