package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	"github.com/SscSPs/splitledger/internal/dto"
)

// InvoiceReaderSvc defines invoice queries
type InvoiceReaderSvc interface {
	// Invoices builds the per-member invoice book of the caller.
	Invoices(ctx context.Context, workplaceID string, filter domain.InvoiceFilter, userID string) (*engine.InvoiceBook, error)
}

// InvoiceWriterSvc defines invoice state changes
type InvoiceWriterSvc interface {
	// SettleSplits marks member splits of a shared expense as settled. With no
	// member IDs every open split is settled.
	SettleSplits(ctx context.Context, workplaceID string, transactionID string, req dto.SettleSplitsRequest, userID string) (*domain.Transaction, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
