package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/dto"
)

// InstallmentSvcFacade expands purchases into dated installment series
type InstallmentSvcFacade interface {
	// CreateSeries expands the request into installments and commits them as one batch.
	CreateSeries(ctx context.Context, workplaceID string, req dto.CreateInstallmentSeriesRequest, userID string) ([]domain.Transaction, error)
}
