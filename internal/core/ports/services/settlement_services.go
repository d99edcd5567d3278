package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/engine"
)

// SettlementSvcFacade computes who pays whom to clear outstanding shared expenses
type SettlementSvcFacade interface {
	Plan(ctx context.Context, workplaceID string, userID string) (*engine.SettlementPlan, error)
}
