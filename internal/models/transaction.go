package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Splits live in transaction_splits.
type Transaction struct {
	TransactionID        string              `db:"transaction_id"`
	WorkplaceID          string              `db:"workplace_id"`
	Kind                 string              `db:"kind"`
	Amount               decimal.Decimal     `db:"amount"`
	CurrencyCode         string              `db:"currency_code"`
	TransactionDate      time.Time           `db:"transaction_date"`
	Description          string              `db:"description"`
	SourceAccountID      string              `db:"source_account_id"`
	DestinationAccountID sql.NullString      `db:"destination_account_id"`
	DestinationAmount    decimal.NullDecimal `db:"destination_amount"`
	PayerID              sql.NullString      `db:"payer_id"`
	IsShared             bool                `db:"is_shared"`
	IsInstallment        bool                `db:"is_installment"`
	SeriesID             sql.NullString      `db:"series_id"`
	InstallmentIndex     sql.NullInt32       `db:"installment_index"`
	InstallmentTotal     sql.NullInt32       `db:"installment_total"`
	IsSettled            bool                `db:"is_settled"`
	IsRefund             bool                `db:"is_refund"`
	Deleted              bool                `db:"deleted"`
	TripID               sql.NullString      `db:"trip_id"`
	AuditFields
}

// Split is a row of the transaction_splits table.
type Split struct {
	TransactionID  string          `db:"transaction_id"`
	MemberID       string          `db:"member_id"`
	AssignedAmount decimal.Decimal `db:"assigned_amount"`
	IsSettled      bool            `db:"is_settled"`
	SettledAt      sql.NullTime    `db:"settled_at"`
}
