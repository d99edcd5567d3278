package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines what kind of funding source an account row is.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	WorkplaceID    string          `db:"workplace_id"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	CurrencyCode   string          `db:"currency_code"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	AuditFields
}
