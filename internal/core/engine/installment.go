package engine

import (
	"fmt"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IDGenerator produces identifiers for new records.
type IDGenerator func() string

// PendingTransactionID stands in for the ID of an intent that has not been
// stored yet, so validation messages still name the record.
const PendingTransactionID = "pending"

// ExpandInstallments splits one transaction intent into count dated
// installments that share a fresh series ID. Every installment but the last
// gets amount/count rounded to cents; the last takes whatever is left, so the
// amounts (and each member's split amounts) add back up exactly. Split
// amounts are shifted between installments so that no installment's splits
// add up to more than its amount.
func ExpandInstallments(intent domain.Transaction, count int, newID IDGenerator) ([]domain.Transaction, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: installment count must be positive, got %d", apperrors.ErrValidation, count)
	}
	if intent.TransactionID == "" {
		intent.TransactionID = PendingTransactionID
	}
	if intent.Deleted {
		return nil, fmt.Errorf("%w: cannot expand deleted transaction %s", apperrors.ErrValidation, intent.TransactionID)
	}
	if _, err := intent.Classify(); err != nil {
		return nil, err
	}
	if newID == nil {
		newID = uuid.NewString
	}

	amounts, err := Allocate(intent.Amount, count)
	if err != nil {
		return nil, fmt.Errorf("installment amounts: %w", err)
	}
	for _, a := range amounts {
		if !a.IsPositive() {
			return nil, fmt.Errorf("%w: %s is too small to spread over %d installments", apperrors.ErrValidation, intent.Amount.String(), count)
		}
	}

	splitAmounts := make([][]decimal.Decimal, len(intent.Splits))
	for m, split := range intent.Splits {
		splitAmounts[m], err = Allocate(split.AssignedAmount, count)
		if err != nil {
			return nil, fmt.Errorf("installment split for member %s: %w", split.MemberID, err)
		}
	}
	rebalanceSplits(amounts, splitAmounts)

	var destAmounts []decimal.Decimal
	if intent.DestinationAmount != nil {
		destAmounts, err = Allocate(*intent.DestinationAmount, count)
		if err != nil {
			return nil, fmt.Errorf("installment destination amounts: %w", err)
		}
	}

	seriesID := newID()
	out := make([]domain.Transaction, count)
	for i := 0; i < count; i++ {
		inst := intent.Clone()
		inst.TransactionID = newID()
		inst.Amount = amounts[i]
		inst.Date = AddMonthsClamped(intent.Date, i)
		inst.IsInstallment = true
		inst.SeriesID = seriesID
		inst.InstallmentIndex = i + 1
		inst.InstallmentTotal = count
		inst.IsSettled = false
		if destAmounts != nil {
			v := destAmounts[i]
			inst.DestinationAmount = &v
		}
		for m := range inst.Splits {
			inst.Splits[m].AssignedAmount = splitAmounts[m][i]
			inst.Splits[m].IsSettled = false
			inst.Splits[m].SettledAt = nil
		}
		out[i] = inst
	}
	return out, nil
}

// Allocate divides total into count parts of total/count rounded to cents,
// with the remainder on the last part. When rounding up would leave nothing
// for the last part (0.15 over 9, 0.45 over 10) the parts are truncated to
// cents instead, so the last part is never below the others and the sum stays
// exact.
func Allocate(total decimal.Decimal, count int) ([]decimal.Decimal, error) {
	base, err := money.Divide(total, decimal.NewFromInt(int64(count)))
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: cannot allocate into %d parts", apperrors.ErrValidation, count)
	}

	rest := decimal.NewFromInt(int64(count - 1))
	if tail := total.Sub(base.Mul(rest)); !total.IsZero() && tail.Sign() != total.Sign() {
		base = total.Div(decimal.NewFromInt(int64(count))).Truncate(money.Precision)
	}

	parts := make([]decimal.Decimal, count)
	for i := 0; i < count-1; i++ {
		parts[i] = base
	}
	parts[count-1] = total.Sub(base.Mul(rest))
	return parts, nil
}

// rebalanceSplits moves split amounts between installments, inside each
// member's column, until no installment's splits add up to more than its
// amount. Column sums are unchanged. If the intent's splits already exceed
// its amount (within the one-cent tolerance) that excess stays on one
// installment.
func rebalanceSplits(amounts []decimal.Decimal, columns [][]decimal.Decimal) {
	if len(columns) == 0 {
		return
	}
	slack := make([]decimal.Decimal, len(amounts))
	for i, a := range amounts {
		slack[i] = a
		for _, col := range columns {
			slack[i] = slack[i].Sub(col[i])
		}
	}

	for i := range amounts {
		for j := range amounts {
			if !slack[i].IsNegative() {
				break
			}
			if j == i || !slack[j].IsPositive() {
				continue
			}
			for _, col := range columns {
				if !slack[i].IsNegative() || !slack[j].IsPositive() {
					break
				}
				move := decimal.Min(slack[i].Neg(), slack[j], col[i])
				if !move.IsPositive() {
					continue
				}
				col[i] = col[i].Sub(move)
				col[j] = col[j].Add(move)
				slack[i] = slack[i].Add(move)
				slack[j] = slack[j].Sub(move)
			}
		}
	}
}

// AddMonthsClamped moves t by months, keeping its day-of-month but clamping
// it to the length of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
