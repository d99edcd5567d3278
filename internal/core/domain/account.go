package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType describes what kind of funding source an account is.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditCard AccountType = "CREDIT_CARD"
	Cash       AccountType = "CASH"
	Investment AccountType = "INVESTMENT"
)

// Account represents a funding account owned by a workplace.
// InitialBalance is the authoritative seed; Balance is only ever filled in by
// balance reconstruction and is never read back as truth.
type Account struct {
	AccountID      string          `json:"accountID"`    // Primary Key (e.g., UUID)
	WorkplaceID    string          `json:"workplaceID"`  // FK -> workplaces.workplace_id
	Name           string          `json:"name"`         // User-defined name
	AccountType    AccountType     `json:"accountType"`  // CHECKING, CREDIT_CARD, etc.
	CurrencyCode   string          `json:"currencyCode"` // ISO code, e.g. "BRL"
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Balance        decimal.Decimal `json:"balance"` // Derived
	AuditFields
}
