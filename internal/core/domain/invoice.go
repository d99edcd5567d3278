package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemKind says whether the caller is owed (CREDIT) or owes (DEBIT).
type InvoiceItemKind string

const (
	InvoiceCredit InvoiceItemKind = "CREDIT"
	InvoiceDebit  InvoiceItemKind = "DEBIT"
)

// AttributionConfidence records how the counterparty of an item was resolved.
type AttributionConfidence string

const (
	ConfidenceLinked      AttributionConfidence = "LINKED"
	ConfidenceDegraded    AttributionConfidence = "DEGRADED"
	ConfidencePlaceholder AttributionConfidence = "PLACEHOLDER"
)

// InvoiceStatus filters invoice items by settlement state.
type InvoiceStatus string

const (
	InvoiceStatusAll  InvoiceStatus = "all"
	InvoiceStatusOpen InvoiceStatus = "open"
	InvoiceStatusPaid InvoiceStatus = "paid"
)

// InvoiceItem is a derived credit/debit between the caller and one member for one
// transaction. It is never persisted.
type InvoiceItem struct {
	SourceTransactionID string                `json:"sourceTransactionID"`
	MemberID            string                `json:"memberID"`
	Kind                InvoiceItemKind       `json:"kind"`
	Amount              decimal.Decimal       `json:"amount"`
	CurrencyCode        string                `json:"currencyCode"`
	IsPaid              bool                  `json:"isPaid"`
	TripID              *string               `json:"tripID,omitempty"`
	Date                time.Time             `json:"date"`
	Description         string                `json:"description"`
	Confidence          AttributionConfidence `json:"confidence"`
}

// InvoiceFilter narrows which transactions produce invoice items.
// Zero values mean "no restriction".
type InvoiceFilter struct {
	TripID *string
	From   *time.Time
	To     *time.Time // inclusive, end of day
	Status InvoiceStatus
}

// InvoiceTotals aggregates unsettled items of one currency.
type InvoiceTotals struct {
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
	Net     decimal.Decimal `json:"net"`
}
