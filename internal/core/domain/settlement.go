package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SettlementLineKind distinguishes payment instructions from the terminal "all settled" line.
type SettlementLineKind string

const (
	SettlementPayment    SettlementLineKind = "PAYMENT"
	SettlementAllSettled SettlementLineKind = "ALL_SETTLED"
)

// SettlementLine is one instruction produced by debt netting.
type SettlementLine struct {
	Kind         SettlementLineKind `json:"kind"`
	FromMemberID string             `json:"fromMemberID,omitempty"`
	ToMemberID   string             `json:"toMemberID,omitempty"`
	Amount       decimal.Decimal    `json:"amount"`
	CurrencyCode string             `json:"currencyCode,omitempty"`
}

func (l SettlementLine) String() string {
	if l.Kind == SettlementAllSettled {
		return "all settled"
	}
	return fmt.Sprintf("%s pays %s %s", l.FromMemberID, l.ToMemberID, l.Amount.StringFixed(2))
}

// NetBalance is a participant's position in one currency: positive means owed money.
type NetBalance struct {
	MemberID     string          `json:"memberID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
}
