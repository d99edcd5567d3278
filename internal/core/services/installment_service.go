package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/google/uuid"
)

// installmentService expands purchases into installment series and stores them.
type installmentService struct {
	BaseService
	transactionRepo portsrepo.TransactionWriter
	observers       []portscache.InvoiceObserver
	newID           engine.IDGenerator
	now             func() time.Time
}

// InstallmentServiceOption is a functional option for configuring the installment service
type InstallmentServiceOption func(*installmentService)

// WithIDGenerator overrides how series and installment IDs are produced.
func WithIDGenerator(newID engine.IDGenerator) InstallmentServiceOption {
	return func(s *installmentService) {
		s.newID = newID
	}
}

// WithInstallmentObservers registers observers notified after a series is committed.
func WithInstallmentObservers(observers ...portscache.InvoiceObserver) InstallmentServiceOption {
	return func(s *installmentService) {
		s.observers = append(s.observers, observers...)
	}
}

// WithInstallmentClock overrides the time source used for audit fields.
func WithInstallmentClock(now func() time.Time) InstallmentServiceOption {
	return func(s *installmentService) {
		s.now = now
	}
}

// NewInstallmentService creates a new installment service with the provided options
func NewInstallmentService(transactionRepo portsrepo.TransactionWriter, options ...InstallmentServiceOption) portssvc.InstallmentSvcFacade {
	svc := &installmentService{
		transactionRepo: transactionRepo,
		newID:           uuid.NewString,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InstallmentSvcFacade = (*installmentService)(nil)

func (s *installmentService) CreateSeries(ctx context.Context, workplaceID string, req dto.CreateInstallmentSeriesRequest, userID string) ([]domain.Transaction, error) {
	series, err := engine.ExpandInstallments(req.ToIntent(workplaceID), req.Count, s.newID)
	if err != nil {
		s.LogDebug(ctx, "Rejected installment series",
			slog.String("workplace_id", workplaceID),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now().UTC()
	for i := range series {
		series[i].AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
	}

	if err := s.transactionRepo.SaveInstallmentSeries(ctx, series); err != nil {
		s.LogError(ctx, err, "Failed to save installment series",
			slog.String("workplace_id", workplaceID),
			slog.String("series_id", series[0].SeriesID))
		return nil, err
	}

	ids := make([]string, len(series))
	for i, tx := range series {
		ids[i] = tx.TransactionID
	}
	notify(ctx, s.observers, portscache.InvoiceEvent{
		WorkplaceID:    workplaceID,
		TransactionIDs: ids,
		Reason:         portscache.ReasonSeriesCreated,
		At:             now,
	})

	s.LogInfo(ctx, "Installment series created",
		slog.String("workplace_id", workplaceID),
		slog.String("series_id", series[0].SeriesID),
		slog.Int("installments", len(series)))
	return series, nil
}
