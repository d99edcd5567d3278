package dto

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	"github.com/SscSPs/splitledger/internal/utils/money"
)

// InvoiceQuery holds the query parameters of the invoices endpoint.
// Month and From/To are mutually exclusive.
type InvoiceQuery struct {
	TripID string `form:"trip_id"`
	Month  string `form:"month" binding:"omitempty,datetime=2006-01"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Status string `form:"status" binding:"omitempty,oneof=all open paid"`
}

// ToFilter converts the query into an engine filter.
func (q InvoiceQuery) ToFilter() (domain.InvoiceFilter, error) {
	f := domain.InvoiceFilter{Status: domain.InvoiceStatus(q.Status)}
	if f.Status == "" {
		f.Status = domain.InvoiceStatusAll
	}
	if q.TripID != "" {
		trip := q.TripID
		f.TripID = &trip
	}

	if q.Month != "" {
		if q.From != "" || q.To != "" {
			return f, fmt.Errorf("%w: month cannot be combined with from/to", apperrors.ErrValidation)
		}
		m, err := time.Parse("2006-01", q.Month)
		if err != nil {
			return f, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, q.Month)
		}
		from, to := engine.MonthPeriod(m)
		f.From, f.To = &from, &to
		return f, nil
	}

	if q.From != "" {
		from, err := time.Parse(time.DateOnly, q.From)
		if err != nil {
			return f, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, q.From)
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.DateOnly, q.To)
		if err != nil {
			return f, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, q.To)
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, fmt.Errorf("%w: to date is before from date", apperrors.ErrValidation)
	}
	return f, nil
}

// InvoiceItemResponse is one derived credit or debit.
type InvoiceItemResponse struct {
	SourceTransactionID string                       `json:"sourceTransactionID"`
	Kind                domain.InvoiceItemKind       `json:"kind"`
	Amount              string                       `json:"amount"`
	CurrencyCode        string                       `json:"currencyCode"`
	IsPaid              bool                         `json:"isPaid"`
	TripID              *string                      `json:"tripID,omitempty"`
	Date                string                       `json:"date"`
	Description         string                       `json:"description"`
	Confidence          domain.AttributionConfidence `json:"confidence"`
}

// InvoiceTotalsResponse aggregates the open items of one currency.
type InvoiceTotalsResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Credits      string `json:"credits"`
	Debits       string `json:"debits"`
	Net          string `json:"net"`
}

// MemberInvoiceResponse groups the items of one member.
type MemberInvoiceResponse struct {
	MemberID    string                  `json:"memberID"`
	MemberName  string                  `json:"memberName"`
	Placeholder bool                    `json:"placeholder"`
	Items       []InvoiceItemResponse   `json:"items"`
	Totals      []InvoiceTotalsResponse `json:"totals"`
}

// InvoicesResponse defines the data returned by the invoices endpoint.
type InvoicesResponse struct {
	Members []MemberInvoiceResponse `json:"members"`
	Totals  []InvoiceTotalsResponse `json:"totals"`
	Issues  []IssueResponse         `json:"issues"`
}

// ToInvoicesResponse converts an invoice book, members in ID order.
func ToInvoicesResponse(book *engine.InvoiceBook) InvoicesResponse {
	ids := book.MemberIDs()
	out := InvoicesResponse{
		Members: make([]MemberInvoiceResponse, len(ids)),
		Totals:  toTotalsResponse(book.GrandTotals()),
		Issues:  ToIssueResponses(book.Issues),
	}
	for i, id := range ids {
		member := book.Members[id]
		items := book.Items[id]
		mr := MemberInvoiceResponse{
			MemberID:    id,
			MemberName:  member.Name,
			Placeholder: member == domain.PlaceholderMember(id),
			Items:       make([]InvoiceItemResponse, len(items)),
			Totals:      toTotalsResponse(book.Totals(id)),
		}
		for j, it := range items {
			mr.Items[j] = InvoiceItemResponse{
				SourceTransactionID: it.SourceTransactionID,
				Kind:                it.Kind,
				Amount:              money.Format(it.Amount, int(money.Precision)),
				CurrencyCode:        it.CurrencyCode,
				IsPaid:              it.IsPaid,
				TripID:              it.TripID,
				Date:                it.Date.Format(time.DateOnly),
				Description:         it.Description,
				Confidence:          it.Confidence,
			}
		}
		out.Members[i] = mr
	}
	return out
}

func toTotalsResponse(totals map[string]domain.InvoiceTotals) []InvoiceTotalsResponse {
	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	out := make([]InvoiceTotalsResponse, len(currencies))
	for i, c := range currencies {
		t := totals[c]
		out[i] = InvoiceTotalsResponse{
			CurrencyCode: c,
			Credits:      money.Format(t.Credits, int(money.Precision)),
			Debits:       money.Format(t.Debits, int(money.Precision)),
			Net:          money.Format(t.Net, int(money.Precision)),
		}
	}
	return out
}
