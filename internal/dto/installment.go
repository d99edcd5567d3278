package dto

import (
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// SplitRequest is one member's share of a purchase.
type SplitRequest struct {
	MemberID       string          `json:"memberID" binding:"required"`
	AssignedAmount decimal.Decimal `json:"assignedAmount" binding:"decimal_gte0"`
}

// CreateInstallmentSeriesRequest describes a purchase to be spread over Count monthly installments.
type CreateInstallmentSeriesRequest struct {
	Kind                 domain.TransactionKind `json:"kind" binding:"required,oneof=EXPENSE INCOME TRANSFER"`
	Amount               decimal.Decimal        `json:"amount" binding:"decimal_gt0"`
	CurrencyCode         string                 `json:"currencyCode" binding:"required,len=3"`
	Date                 time.Time              `json:"date" binding:"required"`
	Description          string                 `json:"description" binding:"max=255"`
	SourceAccountID      string                 `json:"sourceAccountID"`
	DestinationAccountID *string                `json:"destinationAccountID"`
	DestinationAmount    *decimal.Decimal       `json:"destinationAmount" binding:"omitempty,decimal_gt0"`
	PayerID              *string                `json:"payerID"`
	Splits               []SplitRequest         `json:"splits" binding:"omitempty,dive"`
	IsShared             bool                   `json:"isShared"`
	TripID               *string                `json:"tripID"`
	Count                int                    `json:"count" binding:"required,min=1,max=360"`
}

// ToIntent converts the request into the transaction the series is expanded from.
func (r CreateInstallmentSeriesRequest) ToIntent(workplaceID string) domain.Transaction {
	tx := domain.Transaction{
		WorkplaceID:          workplaceID,
		Kind:                 r.Kind,
		Amount:               money.Round(r.Amount),
		CurrencyCode:         r.CurrencyCode,
		Date:                 r.Date,
		Description:          r.Description,
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		PayerID:              r.PayerID,
		IsShared:             r.IsShared,
		TripID:               r.TripID,
	}
	if r.DestinationAmount != nil {
		d := money.Round(*r.DestinationAmount)
		tx.DestinationAmount = &d
	}
	for _, s := range r.Splits {
		tx.Splits = append(tx.Splits, domain.Split{MemberID: s.MemberID, AssignedAmount: money.Round(s.AssignedAmount)})
	}
	return tx
}

// SplitResponse is a split as stored.
type SplitResponse struct {
	MemberID       string     `json:"memberID"`
	AssignedAmount string     `json:"assignedAmount"`
	IsSettled      bool       `json:"isSettled"`
	SettledAt      *time.Time `json:"settledAt,omitempty"`
}

// TransactionResponse defines the data returned for a stored transaction.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	Kind                 domain.TransactionKind `json:"kind"`
	Amount               string                 `json:"amount"`
	CurrencyCode         string                 `json:"currencyCode"`
	Date                 string                 `json:"date"`
	Description          string                 `json:"description"`
	SourceAccountID      string                 `json:"sourceAccountID,omitempty"`
	DestinationAccountID *string                `json:"destinationAccountID,omitempty"`
	DestinationAmount    *string                `json:"destinationAmount,omitempty"`
	PayerID              *string                `json:"payerID,omitempty"`
	Splits               []SplitResponse        `json:"splits"`
	SeriesID             string                 `json:"seriesID,omitempty"`
	InstallmentIndex     int                    `json:"installmentIndex,omitempty"`
	InstallmentTotal     int                    `json:"installmentTotal,omitempty"`
	IsSettled            bool                   `json:"isSettled"`
	TripID               *string                `json:"tripID,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	CreatedBy            string                 `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(tx *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		TransactionID:        tx.TransactionID,
		Kind:                 tx.Kind,
		Amount:               money.Format(tx.Amount, int(money.Precision)),
		CurrencyCode:         tx.CurrencyCode,
		Date:                 tx.Date.Format(time.DateOnly),
		Description:          tx.Description,
		SourceAccountID:      tx.SourceAccountID,
		DestinationAccountID: tx.DestinationAccountID,
		PayerID:              tx.PayerID,
		Splits:               make([]SplitResponse, len(tx.Splits)),
		SeriesID:             tx.SeriesID,
		InstallmentIndex:     tx.InstallmentIndex,
		InstallmentTotal:     tx.InstallmentTotal,
		IsSettled:            tx.IsSettled,
		TripID:               tx.TripID,
		CreatedAt:            tx.CreatedAt,
		CreatedBy:            tx.CreatedBy,
	}
	if tx.DestinationAmount != nil {
		d := money.Format(*tx.DestinationAmount, int(money.Precision))
		res.DestinationAmount = &d
	}
	for i, s := range tx.Splits {
		res.Splits[i] = SplitResponse{
			MemberID:       s.MemberID,
			AssignedAmount: money.Format(s.AssignedAmount, int(money.Precision)),
			IsSettled:      s.IsSettled,
			SettledAt:      s.SettledAt,
		}
	}
	return res
}

// ToListTransactionResponse converts a slice of domain.Transaction to a slice of TransactionResponse DTOs
func ToListTransactionResponse(txs []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txs))
	for i := range txs {
		res[i] = ToTransactionResponse(&txs[i])
	}
	return res
}

// SettleSplitsRequest names the members whose splits are being paid.
// An empty list settles every open split of the transaction.
type SettleSplitsRequest struct {
	MemberIDs []string `json:"memberIDs" binding:"omitempty,dive,required"`
}
