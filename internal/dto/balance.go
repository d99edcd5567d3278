package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	"github.com/SscSPs/splitledger/internal/utils/money"
)

// BalanceQuery holds the query parameters of the balances endpoint.
type BalanceQuery struct {
	AsOf string `form:"as_of" binding:"omitempty,datetime=2006-01-02"` // Optional inclusive cutoff date
}

// Cutoff parses AsOf. It returns nil when no cutoff was requested.
func (q BalanceQuery) Cutoff() (*time.Time, error) {
	if q.AsOf == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, q.AsOf)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid as_of date %q", apperrors.ErrValidation, q.AsOf)
	}
	return &t, nil
}

// AccountBalanceResponse defines the reconstructed state of one account.
type AccountBalanceResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	CurrencyCode   string             `json:"currencyCode"`
	InitialBalance string             `json:"initialBalance"`
	Balance        string             `json:"balance"`
}

// BalancesResponse defines the data returned by the balances endpoint.
type BalancesResponse struct {
	AsOf     *string                  `json:"asOf,omitempty"`
	Accounts []AccountBalanceResponse `json:"accounts"`
	Issues   []IssueResponse          `json:"issues"`
}

// ToBalancesResponse converts a reconstruction result.
func ToBalancesResponse(res *engine.ReconstructionResult, asOf *time.Time) BalancesResponse {
	out := BalancesResponse{
		Accounts: make([]AccountBalanceResponse, len(res.Accounts)),
		Issues:   ToIssueResponses(res.Issues),
	}
	if asOf != nil {
		s := asOf.Format(time.DateOnly)
		out.AsOf = &s
	}
	for i, acc := range res.Accounts {
		out.Accounts[i] = AccountBalanceResponse{
			AccountID:      acc.AccountID,
			Name:           acc.Name,
			AccountType:    acc.AccountType,
			CurrencyCode:   acc.CurrencyCode,
			InitialBalance: money.Format(acc.InitialBalance, int(money.Precision)),
			Balance:        money.Format(acc.Balance, int(money.Precision)),
		}
	}
	return out
}
