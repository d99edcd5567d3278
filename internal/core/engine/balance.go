package engine

import (
	"fmt"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconstructOptions tunes a replay.
type ReconstructOptions struct {
	// Cutoff, when set, excludes every transaction dated after the end of that day.
	Cutoff *time.Time
	// SelfUserID identifies the caller; expenses paid by anyone else have no balance effect.
	SelfUserID string
	// Members is the roster used to recognise the caller's member ID as a payer.
	Members []domain.Member
}

// ReconstructionResult holds freshly derived accounts (input order) and the issues met.
type ReconstructionResult struct {
	Accounts []domain.Account
	Issues   []domain.Issue
}

// Account returns the reconstructed account with the given ID.
func (r ReconstructionResult) Account(accountID string) (domain.Account, bool) {
	for _, acc := range r.Accounts {
		if acc.AccountID == accountID {
			return acc, true
		}
	}
	return domain.Account{}, false
}

// EndOfDay returns the last instant of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Reconstruct replays transactions in the order given over the accounts' initial
// balances. It never mutates its inputs and never aborts: malformed or dangling
// records are skipped and reported.
func Reconstruct(accounts []domain.Account, transactions []domain.Transaction, opts ReconstructOptions) ReconstructionResult {
	ledger := newBalanceLedger(accounts)
	self := newRoster(opts.Members).selfIDs(opts.SelfUserID)
	var issues []domain.Issue

	var cutoff time.Time
	if opts.Cutoff != nil {
		cutoff = EndOfDay(*opts.Cutoff)
	}

	for _, tx := range transactions {
		if tx.Deleted {
			continue
		}
		entry, err := tx.Classify()
		if err != nil {
			issues = append(issues, domain.IssueFromError(tx.TransactionID, err))
			continue
		}
		if opts.Cutoff != nil && tx.Date.After(cutoff) {
			continue
		}
		issues = append(issues, ledger.apply(entry, self)...)
	}

	return ReconstructionResult{Accounts: ledger.accounts(), Issues: issues}
}

// balanceLedger is the working state of a single replay.
type balanceLedger struct {
	order    []domain.Account
	balances map[string]decimal.Decimal
	currency map[string]string
}

func newBalanceLedger(accounts []domain.Account) *balanceLedger {
	l := &balanceLedger{
		order:    make([]domain.Account, len(accounts)),
		balances: make(map[string]decimal.Decimal, len(accounts)),
		currency: make(map[string]string, len(accounts)),
	}
	copy(l.order, accounts)
	for _, acc := range accounts {
		l.balances[acc.AccountID] = acc.InitialBalance
		l.currency[acc.AccountID] = acc.CurrencyCode
	}
	return l
}

func (l *balanceLedger) has(accountID string) bool {
	_, ok := l.balances[accountID]
	return ok
}

func (l *balanceLedger) add(accountID string, amount decimal.Decimal) {
	l.balances[accountID] = l.balances[accountID].Add(amount)
}

func (l *balanceLedger) accounts() []domain.Account {
	out := make([]domain.Account, len(l.order))
	for i, acc := range l.order {
		acc.Balance = l.balances[acc.AccountID]
		out[i] = acc
	}
	return out
}

// apply books one classified entry and returns the issues it raised. A
// currency fallback issue accompanies a booked transfer; every other issue
// means nothing was booked.
func (l *balanceLedger) apply(entry domain.Entry, self []string) []domain.Issue {
	tx := entry.Record()
	if (tx.IsShared || tx.IsInstallment) && tx.SourceAccountID == "" && !tx.PaidByOther(self...) {
		// floating: lives in the invoice system until a funding account is resolved
		return nil
	}
	if im, ok := entry.(domain.InstallmentMember); ok {
		entry = im.Entry
	}

	switch e := entry.(type) {
	case domain.SimpleExpense:
		return l.applyDirect(e.Tx, e.Tx.Amount.Neg())
	case domain.SharedExpense:
		if e.Tx.PaidByOther(self...) {
			return nil
		}
		return l.applyDirect(e.Tx, e.Tx.Amount.Neg())
	case domain.Income:
		return l.applyDirect(e.Tx, e.Tx.Amount)
	case domain.Transfer:
		return l.applyTransfer(e)
	default:
		err := fmt.Errorf("%w: unsupported entry %T", apperrors.ErrValidation, entry)
		return []domain.Issue{domain.IssueFromError(tx.TransactionID, err)}
	}
}

// applyDirect books a signed effect on the source account. Refunds reverse the sign.
func (l *balanceLedger) applyDirect(tx domain.Transaction, effect decimal.Decimal) []domain.Issue {
	if tx.SourceAccountID == "" {
		err := fmt.Errorf("%w: transaction %s has no source account", apperrors.ErrValidation, tx.TransactionID)
		return []domain.Issue{domain.IssueFromError(tx.TransactionID, err)}
	}
	if !l.has(tx.SourceAccountID) {
		return []domain.Issue{missingAccount(tx, tx.SourceAccountID, "source")}
	}
	if tx.IsRefund {
		effect = effect.Neg()
	}
	l.add(tx.SourceAccountID, effect)
	return nil
}

func (l *balanceLedger) applyTransfer(e domain.Transfer) []domain.Issue {
	tx := e.Tx
	if tx.SourceAccountID == "" {
		err := fmt.Errorf("%w: transfer %s has no source account", apperrors.ErrValidation, tx.TransactionID)
		return []domain.Issue{domain.IssueFromError(tx.TransactionID, err)}
	}
	if !l.has(tx.SourceAccountID) {
		return []domain.Issue{missingAccount(tx, tx.SourceAccountID, "source")}
	}

	l.add(tx.SourceAccountID, tx.Amount.Neg())

	if !l.has(e.DestinationAccountID) {
		// restore conservation: the money never left
		l.add(tx.SourceAccountID, tx.Amount)
		return []domain.Issue{missingAccount(tx, e.DestinationAccountID, "destination")}
	}

	incoming, fallback := e.IncomingAmount()
	l.add(e.DestinationAccountID, incoming)

	srcCurrency, dstCurrency := l.currency[tx.SourceAccountID], l.currency[e.DestinationAccountID]
	if fallback && srcCurrency != dstCurrency {
		return []domain.Issue{{
			Kind:          domain.IssueCurrencyFallback,
			TransactionID: tx.TransactionID,
			AccountID:     e.DestinationAccountID,
			Message: fmt.Sprintf("transfer %s from %s to %s has no destination amount; applied 1:1 (%s %s -> %s)",
				tx.TransactionID, tx.SourceAccountID, e.DestinationAccountID, tx.Amount.StringFixed(2), srcCurrency, dstCurrency),
		}}
	}
	return nil
}

func missingAccount(tx domain.Transaction, accountID, role string) domain.Issue {
	err := fmt.Errorf("%w: transaction %s references missing %s account %s", apperrors.ErrReferentialIntegrity, tx.TransactionID, role, accountID)
	return domain.Issue{
		Kind:          domain.IssueReferentialIntegrity,
		TransactionID: tx.TransactionID,
		AccountID:     accountID,
		Message:       err.Error(),
		Err:           err,
	}
}
