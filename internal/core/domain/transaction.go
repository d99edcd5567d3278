package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates the economic nature of a ledger record.
type TransactionKind string

const (
	KindExpense  TransactionKind = "EXPENSE"
	KindIncome   TransactionKind = "INCOME"
	KindTransfer TransactionKind = "TRANSFER"
)

// Split is one member's share of a transaction amount.
type Split struct {
	MemberID       string          `json:"memberID"`
	AssignedAmount decimal.Decimal `json:"assignedAmount"`
	IsSettled      bool            `json:"isSettled"`
	SettledAt      *time.Time      `json:"settledAt,omitempty"`
}

// Transaction is the flat ledger record exchanged with the persistence layer.
// Amount is expressed in the source account currency. The log is append-mostly;
// Deleted is a soft-delete flag that every consumer must honour.
type Transaction struct {
	TransactionID        string           `json:"transactionID"` // Primary Key (e.g., UUID)
	WorkplaceID          string           `json:"workplaceID"`
	Kind                 TransactionKind  `json:"kind"`
	Amount               decimal.Decimal  `json:"amount"`
	CurrencyCode         string           `json:"currencyCode"`
	Date                 time.Time        `json:"date"`
	Description          string           `json:"description"`
	SourceAccountID      string           `json:"sourceAccountID"`
	DestinationAccountID *string          `json:"destinationAccountID,omitempty"`
	DestinationAmount    *decimal.Decimal `json:"destinationAmount,omitempty"`
	PayerID              *string          `json:"payerID,omitempty"` // External identity of a third-party payer
	Splits               []Split          `json:"splits"`
	IsShared             bool             `json:"isShared"`
	IsInstallment        bool             `json:"isInstallment"`
	SeriesID             string           `json:"seriesID,omitempty"`
	InstallmentIndex     int              `json:"installmentIndex,omitempty"` // 1-based
	InstallmentTotal     int              `json:"installmentTotal,omitempty"`
	IsSettled            bool             `json:"isSettled"`
	IsRefund             bool             `json:"isRefund"`
	Deleted              bool             `json:"deleted"`
	TripID               *string          `json:"tripID,omitempty"`
	AuditFields
}

// SplitTotal returns the sum of every split's assigned amount.
func (t Transaction) SplitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range t.Splits {
		total = total.Add(s.AssignedAmount)
	}
	return total
}

// Remainder is the part of Amount not assigned to any split. It belongs to the payer.
func (t Transaction) Remainder() decimal.Decimal {
	return t.Amount.Sub(t.SplitTotal())
}

// Payer returns the third-party payer identity or "" when none is recorded.
func (t Transaction) Payer() string {
	if t.PayerID == nil {
		return ""
	}
	return *t.PayerID
}

// PaidByOther reports whether someone other than the caller paid for the
// transaction. selfIDs are every identity the caller is known by, typically
// the user ID and the member ID linked to it.
func (t Transaction) PaidByOther(selfIDs ...string) bool {
	payer := t.Payer()
	if payer == "" {
		return false
	}
	for _, id := range selfIDs {
		if id != "" && payer == id {
			return false
		}
	}
	return true
}

// IsSharedExpense reports whether an expense takes part in the invoice system:
// explicitly shared, split, or paid by a third party.
func (t Transaction) IsSharedExpense(selfIDs ...string) bool {
	if t.Kind != KindExpense {
		return false
	}
	return t.IsShared || len(t.Splits) > 0 || t.PaidByOther(selfIDs...)
}

// Destination returns the destination account ID or "".
func (t Transaction) Destination() string {
	if t.DestinationAccountID == nil {
		return ""
	}
	return *t.DestinationAccountID
}

// Trip returns the trip association or "".
func (t Transaction) Trip() string {
	if t.TripID == nil {
		return ""
	}
	return *t.TripID
}

// Clone returns a deep copy so derived results never alias caller input.
func (t Transaction) Clone() Transaction {
	c := t
	if t.Splits != nil {
		c.Splits = make([]Split, len(t.Splits))
		copy(c.Splits, t.Splits)
		for i := range c.Splits {
			if t.Splits[i].SettledAt != nil {
				at := *t.Splits[i].SettledAt
				c.Splits[i].SettledAt = &at
			}
		}
	}
	if t.DestinationAccountID != nil {
		v := *t.DestinationAccountID
		c.DestinationAccountID = &v
	}
	if t.DestinationAmount != nil {
		v := *t.DestinationAmount
		c.DestinationAmount = &v
	}
	if t.PayerID != nil {
		v := *t.PayerID
		c.PayerID = &v
	}
	if t.TripID != nil {
		v := *t.TripID
		c.TripID = &v
	}
	return c
}
