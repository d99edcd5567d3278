package dto

import (
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	"github.com/SscSPs/splitledger/internal/utils/money"
)

// SettlementLineResponse is one payment instruction.
type SettlementLineResponse struct {
	Kind         domain.SettlementLineKind `json:"kind"`
	FromMemberID string                    `json:"fromMemberID,omitempty"`
	ToMemberID   string                    `json:"toMemberID,omitempty"`
	Amount       string                    `json:"amount"`
	CurrencyCode string                    `json:"currencyCode,omitempty"`
	Text         string                    `json:"text"`
}

// NetBalanceResponse is a participant's position in one currency.
type NetBalanceResponse struct {
	MemberID     string `json:"memberID"`
	CurrencyCode string `json:"currencyCode"`
	Balance      string `json:"balance"`
}

// SettlementResponse defines the data returned by the settlement endpoint.
type SettlementResponse struct {
	Lines    []SettlementLineResponse `json:"lines"`
	Balances []NetBalanceResponse     `json:"balances"`
	Issues   []IssueResponse          `json:"issues"`
}

// ToSettlementResponse converts a settlement plan.
func ToSettlementResponse(plan *engine.SettlementPlan) SettlementResponse {
	out := SettlementResponse{
		Lines:    make([]SettlementLineResponse, len(plan.Lines)),
		Balances: make([]NetBalanceResponse, len(plan.Balances)),
		Issues:   ToIssueResponses(plan.Issues),
	}
	for i, l := range plan.Lines {
		out.Lines[i] = SettlementLineResponse{
			Kind:         l.Kind,
			FromMemberID: l.FromMemberID,
			ToMemberID:   l.ToMemberID,
			Amount:       money.Format(l.Amount, int(money.Precision)),
			CurrencyCode: l.CurrencyCode,
			Text:         l.String(),
		}
	}
	for i, b := range plan.Balances {
		out.Balances[i] = NetBalanceResponse{
			MemberID:     b.MemberID,
			CurrencyCode: b.CurrencyCode,
			Balance:      money.Format(b.Balance, int(money.Precision)),
		}
	}
	return out
}
