package engine

import (
	"fmt"
	"slices"
	"sort"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// SettlementOptions tunes debt netting.
type SettlementOptions struct {
	// SelfUserID is the caller's identity; it absorbs unsplit remainders.
	SelfUserID string
}

// SettlementPlan is the result of netting: instructions, the balances they clear, and issues.
type SettlementPlan struct {
	Lines    []domain.SettlementLine
	Balances []domain.NetBalance
	Issues   []domain.Issue
}

// netLedger accumulates balances per currency, remembering first-seen member order.
type netLedger struct {
	balances map[string]map[string]decimal.Decimal
	order    map[string]int
}

func newNetLedger(participants []domain.Member) *netLedger {
	n := &netLedger{
		balances: make(map[string]map[string]decimal.Decimal),
		order:    make(map[string]int, len(participants)),
	}
	for _, p := range participants {
		n.rank(p.MemberID)
	}
	return n
}

func (n *netLedger) rank(memberID string) int {
	if r, ok := n.order[memberID]; ok {
		return r
	}
	n.order[memberID] = len(n.order)
	return n.order[memberID]
}

func (n *netLedger) add(currency, memberID string, amount decimal.Decimal) {
	n.rank(memberID)
	byMember, ok := n.balances[currency]
	if !ok {
		byMember = make(map[string]decimal.Decimal)
		n.balances[currency] = byMember
	}
	byMember[memberID] = byMember[memberID].Add(amount)
}

func (n *netLedger) currencies() []string {
	out := make([]string, 0, len(n.balances))
	for c := range n.balances {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// sorted returns the balances of one currency in first-seen member order.
func (n *netLedger) sorted(currency string) []domain.NetBalance {
	byMember := n.balances[currency]
	out := make([]domain.NetBalance, 0, len(byMember))
	for id, bal := range byMember {
		out = append(out, domain.NetBalance{MemberID: id, CurrencyCode: currency, Balance: bal})
	}
	sort.Slice(out, func(i, j int) bool { return n.order[out[i].MemberID] < n.order[out[j].MemberID] })
	return out
}

// NetBalances computes every participant's position from unsettled shared
// expenses: the payer is credited what is still owed to them, each unsettled
// split debits its member and the unsplit remainder debits the caller.
func NetBalances(transactions []domain.Transaction, participants []domain.Member, opts SettlementOptions) ([]domain.NetBalance, []domain.Issue) {
	r := newRoster(participants)
	self := r.selfID(opts.SelfUserID)
	ledger := newNetLedger(participants)
	var issues []domain.Issue
	reported := make(map[string]bool)

	for _, tx := range transactions {
		if tx.Deleted || tx.IsSettled || !tx.IsSharedExpense(opts.SelfUserID, self) {
			continue
		}
		if _, err := tx.Classify(); err != nil {
			issues = append(issues, domain.IssueFromError(tx.TransactionID, err))
			continue
		}

		payer := self
		if tx.PaidByOther(opts.SelfUserID, self) {
			attribution := r.resolvePayer(tx, self)
			if attribution.Issue != nil {
				issues = append(issues, *attribution.Issue)
			}
			payer = attribution.MemberID
		}

		owedToPayer := tx.Amount
		for _, split := range tx.Splits {
			if split.IsSettled {
				owedToPayer = owedToPayer.Sub(split.AssignedAmount)
				continue
			}
			if _, known := r.member(split.MemberID); !known && split.MemberID != self && !reported[split.MemberID] {
				reported[split.MemberID] = true
				err := fmt.Errorf("%w: split member %s of transaction %s is not a participant", apperrors.ErrReferentialIntegrity, split.MemberID, tx.TransactionID)
				issues = append(issues, domain.Issue{
					Kind:          domain.IssueReferentialIntegrity,
					TransactionID: tx.TransactionID,
					MemberID:      split.MemberID,
					Message:       err.Error(),
					Err:           err,
				})
			}
			ledger.add(tx.CurrencyCode, split.MemberID, split.AssignedAmount.Neg())
		}
		ledger.add(tx.CurrencyCode, payer, owedToPayer)
		if remainder := tx.Remainder(); remainder.IsPositive() {
			ledger.add(tx.CurrencyCode, self, remainder.Neg())
		}
	}

	var out []domain.NetBalance
	for _, currency := range ledger.currencies() {
		for _, nb := range ledger.sorted(currency) {
			nb.Balance = money.Round(nb.Balance)
			out = append(out, nb)
		}
	}
	return out, issues
}

// ComputeSettlement nets balances per currency and matches debtors against
// creditors with a two-pointer greedy sweep. The result always clears every
// balance to within one cent, but it is not guaranteed to use the fewest
// possible transfers for arbitrary debt graphs.
func ComputeSettlement(transactions []domain.Transaction, participants []domain.Member, opts SettlementOptions) SettlementPlan {
	balances, issues := NetBalances(transactions, participants, opts)
	plan := SettlementPlan{Balances: balances, Issues: issues}

	byCurrency := make(map[string][]domain.NetBalance)
	var currencies []string
	for _, nb := range balances {
		if _, ok := byCurrency[nb.CurrencyCode]; !ok {
			currencies = append(currencies, nb.CurrencyCode)
		}
		byCurrency[nb.CurrencyCode] = append(byCurrency[nb.CurrencyCode], nb)
	}

	for _, currency := range currencies {
		plan.Lines = append(plan.Lines, SettleBalances(byCurrency[currency])...)
	}
	if len(plan.Lines) == 0 {
		plan.Lines = []domain.SettlementLine{{Kind: domain.SettlementAllSettled, Amount: decimal.Zero}}
	}
	return plan
}

// SettleBalances runs the greedy sweep over balances of a single currency.
// Input order breaks ties so the output is reproducible.
func SettleBalances(balances []domain.NetBalance) []domain.SettlementLine {
	var debtors, creditors []domain.NetBalance
	for _, nb := range balances {
		switch {
		case nb.Balance.LessThan(money.Tolerance.Neg()):
			debtors = append(debtors, nb)
		case nb.Balance.GreaterThan(money.Tolerance):
			creditors = append(creditors, nb)
		}
	}
	slices.SortStableFunc(debtors, func(a, b domain.NetBalance) int { return a.Balance.Cmp(b.Balance) })
	slices.SortStableFunc(creditors, func(a, b domain.NetBalance) int { return b.Balance.Cmp(a.Balance) })

	var lines []domain.SettlementLine
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		owed := debtors[i].Balance.Neg()
		amount := money.Round(decimal.Min(owed, creditors[j].Balance))
		if amount.IsPositive() {
			lines = append(lines, domain.SettlementLine{
				Kind:         domain.SettlementPayment,
				FromMemberID: debtors[i].MemberID,
				ToMemberID:   creditors[j].MemberID,
				Amount:       amount,
				CurrencyCode: debtors[i].CurrencyCode,
			})
		}
		debtors[i].Balance = debtors[i].Balance.Add(amount)
		creditors[j].Balance = creditors[j].Balance.Sub(amount)

		if money.IsNegligible(debtors[i].Balance) {
			i++
		}
		if creditors[j].Balance.LessThanOrEqual(money.Tolerance) {
			j++
		}
	}
	return lines
}
