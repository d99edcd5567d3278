package domain

import (
	"fmt"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Entry is the typed view of a Transaction. Exactly one variant exists per
// valid field combination; Classify rejects everything else.
type Entry interface {
	Record() Transaction
	isEntry()
}

// SimpleExpense is an expense paid by the caller from a funding account, not shared.
type SimpleExpense struct {
	Tx Transaction
}

// SharedExpense is an expense that takes part in the invoice system. PayerID is
// empty when the caller paid.
type SharedExpense struct {
	Tx      Transaction
	PayerID string
}

// Income credits the source account.
type Income struct {
	Tx Transaction
}

// Transfer moves value between two accounts, possibly across currencies.
type Transfer struct {
	Tx                   Transaction
	DestinationAccountID string
	// DestinationAmount is nil when no explicit rate was recorded.
	DestinationAmount *decimal.Decimal
}

// InstallmentMember wraps one dated slice of an installment series.
type InstallmentMember struct {
	Entry
	SeriesID string
	Index    int
	Total    int
}

func (e SimpleExpense) Record() Transaction { return e.Tx }
func (e SharedExpense) Record() Transaction { return e.Tx }
func (e Income) Record() Transaction        { return e.Tx }
func (e Transfer) Record() Transaction      { return e.Tx }

func (SimpleExpense) isEntry()     {}
func (SharedExpense) isEntry()     {}
func (Income) isEntry()            {}
func (Transfer) isEntry()          {}
func (InstallmentMember) isEntry() {}

// IncomingAmount is what the destination receives: the declared destination
// amount or, failing that, the 1:1 fallback.
func (e Transfer) IncomingAmount() (amount decimal.Decimal, fallback bool) {
	if e.DestinationAmount != nil {
		return *e.DestinationAmount, false
	}
	return e.Tx.Amount, true
}

// Classify validates the record and returns its typed variant.
func (t Transaction) Classify() (Entry, error) {
	if !t.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction %s amount must be positive, got %s", apperrors.ErrValidation, t.TransactionID, t.Amount.String())
	}

	var entry Entry
	switch t.Kind {
	case KindExpense:
		for _, s := range t.Splits {
			if s.MemberID == "" {
				return nil, fmt.Errorf("%w: transaction %s has a split without member", apperrors.ErrValidation, t.TransactionID)
			}
			if s.AssignedAmount.IsNegative() {
				return nil, fmt.Errorf("%w: transaction %s split for %s is negative", apperrors.ErrValidation, t.TransactionID, s.MemberID)
			}
		}
		if t.SplitTotal().Sub(t.Amount).GreaterThan(decimal.New(1, -2)) {
			return nil, fmt.Errorf("%w: transaction %s splits (%s) exceed amount (%s)", apperrors.ErrValidation, t.TransactionID, t.SplitTotal().String(), t.Amount.String())
		}
		if t.IsShared || len(t.Splits) > 0 || t.Payer() != "" {
			entry = SharedExpense{Tx: t, PayerID: t.Payer()}
		} else {
			entry = SimpleExpense{Tx: t}
		}
	case KindIncome:
		if len(t.Splits) > 0 || t.Payer() != "" {
			return nil, fmt.Errorf("%w: income %s cannot carry splits or a payer", apperrors.ErrValidation, t.TransactionID)
		}
		entry = Income{Tx: t}
	case KindTransfer:
		if t.Destination() == "" {
			return nil, fmt.Errorf("%w: transfer %s has no destination account", apperrors.ErrValidation, t.TransactionID)
		}
		if len(t.Splits) > 0 || t.Payer() != "" {
			return nil, fmt.Errorf("%w: transfer %s cannot carry splits or a payer", apperrors.ErrValidation, t.TransactionID)
		}
		if t.DestinationAmount != nil && !t.DestinationAmount.IsPositive() {
			return nil, fmt.Errorf("%w: transfer %s destination amount must be positive", apperrors.ErrValidation, t.TransactionID)
		}
		entry = Transfer{Tx: t, DestinationAccountID: t.Destination(), DestinationAmount: t.DestinationAmount}
	default:
		return nil, fmt.Errorf("%w: transaction %s has unknown kind %q", apperrors.ErrValidation, t.TransactionID, t.Kind)
	}

	if t.IsInstallment {
		if t.InstallmentTotal > 0 && (t.InstallmentIndex < 1 || t.InstallmentIndex > t.InstallmentTotal) {
			return nil, fmt.Errorf("%w: transaction %s installment %d/%d out of range", apperrors.ErrValidation, t.TransactionID, t.InstallmentIndex, t.InstallmentTotal)
		}
		entry = InstallmentMember{Entry: entry, SeriesID: t.SeriesID, Index: t.InstallmentIndex, Total: t.InstallmentTotal}
	}
	return entry, nil
}
