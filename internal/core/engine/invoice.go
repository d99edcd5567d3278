package engine

import (
	"sort"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// InvoiceOptions tunes invoice building.
type InvoiceOptions struct {
	// SelfUserID is the caller's external identity.
	SelfUserID string
	Filter     domain.InvoiceFilter
}

// InvoiceBook is the per-member view of shared expenses from the caller's side.
type InvoiceBook struct {
	Items map[string][]domain.InvoiceItem
	// Members holds a roster entry for every key of Items; unknown members get a placeholder.
	Members map[string]domain.Member
	Issues  []domain.Issue
}

// MemberIDs returns the members of the book in a stable order.
func (b InvoiceBook) MemberIDs() []string {
	ids := make([]string, 0, len(b.Items))
	for id := range b.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Totals groups the unsettled items of one member per currency.
func (b InvoiceBook) Totals(memberID string) map[string]domain.InvoiceTotals {
	return totalsOf(b.Items[memberID])
}

// GrandTotals groups every unsettled item in the book per currency.
func (b InvoiceBook) GrandTotals() map[string]domain.InvoiceTotals {
	var all []domain.InvoiceItem
	for _, items := range b.Items {
		all = append(all, items...)
	}
	return totalsOf(all)
}

func totalsOf(items []domain.InvoiceItem) map[string]domain.InvoiceTotals {
	out := make(map[string]domain.InvoiceTotals)
	for _, it := range items {
		if it.IsPaid {
			continue
		}
		t, ok := out[it.CurrencyCode]
		if !ok {
			t = domain.InvoiceTotals{Credits: decimal.Zero, Debits: decimal.Zero}
		}
		switch it.Kind {
		case domain.InvoiceCredit:
			t.Credits = t.Credits.Add(it.Amount)
		case domain.InvoiceDebit:
			t.Debits = t.Debits.Add(it.Amount)
		}
		t.Net = t.Credits.Sub(t.Debits)
		out[it.CurrencyCode] = t
	}
	return out
}

// BuildInvoices turns shared expenses into CREDIT items (caller paid, one per
// split) and DEBIT items (someone else paid, caller owes the unsplit remainder).
func BuildInvoices(transactions []domain.Transaction, members []domain.Member, opts InvoiceOptions) InvoiceBook {
	r := newRoster(members)
	self := r.selfID(opts.SelfUserID)

	book := InvoiceBook{
		Items:   make(map[string][]domain.InvoiceItem),
		Members: make(map[string]domain.Member),
	}
	for _, m := range members {
		if m.MemberID == self {
			continue
		}
		book.Items[m.MemberID] = []domain.InvoiceItem{}
		book.Members[m.MemberID] = m
	}

	for _, tx := range transactions {
		if tx.Deleted || !tx.IsSharedExpense(opts.SelfUserID, self) {
			continue
		}
		if !matchesPeriod(tx, opts.Filter) {
			continue
		}
		if _, err := tx.Classify(); err != nil {
			book.Issues = append(book.Issues, domain.IssueFromError(tx.TransactionID, err))
			continue
		}

		if !tx.PaidByOther(opts.SelfUserID, self) {
			book.addCredits(r, tx, self, opts.Filter.Status)
			continue
		}
		book.addDebit(r, tx, self, opts.Filter.Status)
	}
	return book
}

func (b *InvoiceBook) addCredits(r *roster, tx domain.Transaction, self string, status domain.InvoiceStatus) {
	for _, split := range tx.Splits {
		if split.MemberID == self || !split.AssignedAmount.IsPositive() {
			continue
		}
		confidence := domain.ConfidenceLinked
		if _, known := r.member(split.MemberID); !known {
			confidence = domain.ConfidencePlaceholder
		}
		b.add(r, newItem(tx, split.MemberID, domain.InvoiceCredit, money.Round(split.AssignedAmount), split.IsSettled, confidence), status)
	}
}

func (b *InvoiceBook) addDebit(r *roster, tx domain.Transaction, self string, status domain.InvoiceStatus) {
	payer := r.resolvePayer(tx, self)
	if payer.Issue != nil {
		b.Issues = append(b.Issues, *payer.Issue)
	}
	myShare := money.Subtract(tx.Amount, tx.SplitTotal())
	if myShare.LessThanOrEqual(money.Tolerance) {
		return
	}
	b.add(r, newItem(tx, payer.MemberID, domain.InvoiceDebit, myShare, tx.IsSettled, payer.Confidence), status)
}

func (b *InvoiceBook) add(r *roster, item domain.InvoiceItem, status domain.InvoiceStatus) {
	if !matchesStatus(item, status) {
		return
	}
	if _, ok := b.Members[item.MemberID]; !ok {
		m, known := r.member(item.MemberID)
		if !known {
			m = domain.PlaceholderMember(item.MemberID)
		}
		b.Members[item.MemberID] = m
	}
	b.Items[item.MemberID] = append(b.Items[item.MemberID], item)
}

func newItem(tx domain.Transaction, memberID string, kind domain.InvoiceItemKind, amount decimal.Decimal, paid bool, confidence domain.AttributionConfidence) domain.InvoiceItem {
	var trip *string
	if tx.TripID != nil {
		t := *tx.TripID
		trip = &t
	}
	return domain.InvoiceItem{
		SourceTransactionID: tx.TransactionID,
		MemberID:            memberID,
		Kind:                kind,
		Amount:              amount,
		CurrencyCode:        tx.CurrencyCode,
		IsPaid:              paid,
		TripID:              trip,
		Date:                tx.Date,
		Description:         tx.Description,
		Confidence:          confidence,
	}
}

func matchesPeriod(tx domain.Transaction, f domain.InvoiceFilter) bool {
	if f.TripID != nil && tx.Trip() != *f.TripID {
		return false
	}
	if f.From != nil && tx.Date.Before(startOfDay(*f.From)) {
		return false
	}
	if f.To != nil && tx.Date.After(EndOfDay(*f.To)) {
		return false
	}
	return true
}

func matchesStatus(item domain.InvoiceItem, status domain.InvoiceStatus) bool {
	switch status {
	case domain.InvoiceStatusPaid:
		return item.IsPaid
	case domain.InvoiceStatusOpen:
		return !item.IsPaid
	default:
		return true
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthPeriod returns the calendar month containing t as an inclusive [from, to] pair.
func MonthPeriod(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	to := from.AddDate(0, 1, -1)
	return from, to
}
