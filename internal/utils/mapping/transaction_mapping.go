package mapping

import (
	"database/sql"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransaction converts a domain Transaction to its row and split rows.
func ToModelTransaction(d domain.Transaction) (models.Transaction, []models.Split) {
	m := models.Transaction{
		TransactionID:        d.TransactionID,
		WorkplaceID:          d.WorkplaceID,
		Kind:                 string(d.Kind),
		Amount:               d.Amount,
		CurrencyCode:         d.CurrencyCode,
		TransactionDate:      d.Date,
		Description:          d.Description,
		SourceAccountID:      d.SourceAccountID,
		DestinationAccountID: toNullString(d.DestinationAccountID),
		PayerID:              toNullString(d.PayerID),
		IsShared:             d.IsShared,
		IsInstallment:        d.IsInstallment,
		IsSettled:            d.IsSettled,
		IsRefund:             d.IsRefund,
		Deleted:              d.Deleted,
		TripID:               toNullString(d.TripID),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
	if d.DestinationAmount != nil {
		m.DestinationAmount = decimal.NullDecimal{Decimal: *d.DestinationAmount, Valid: true}
	}
	if d.IsInstallment {
		m.SeriesID = sql.NullString{String: d.SeriesID, Valid: d.SeriesID != ""}
		m.InstallmentIndex = sql.NullInt32{Int32: int32(d.InstallmentIndex), Valid: true}
		m.InstallmentTotal = sql.NullInt32{Int32: int32(d.InstallmentTotal), Valid: true}
	}

	splits := make([]models.Split, len(d.Splits))
	for i, s := range d.Splits {
		splits[i] = models.Split{
			TransactionID:  d.TransactionID,
			MemberID:       s.MemberID,
			AssignedAmount: s.AssignedAmount,
			IsSettled:      s.IsSettled,
		}
		if s.SettledAt != nil {
			splits[i].SettledAt = sql.NullTime{Time: *s.SettledAt, Valid: true}
		}
	}
	return m, splits
}

// ToDomainTransaction converts a row and its split rows to a domain Transaction.
func ToDomainTransaction(m models.Transaction, splits []models.Split) domain.Transaction {
	d := domain.Transaction{
		TransactionID:        m.TransactionID,
		WorkplaceID:          m.WorkplaceID,
		Kind:                 domain.TransactionKind(m.Kind),
		Amount:               m.Amount,
		CurrencyCode:         m.CurrencyCode,
		Date:                 m.TransactionDate,
		Description:          m.Description,
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: fromNullString(m.DestinationAccountID),
		PayerID:              fromNullString(m.PayerID),
		Splits:               make([]domain.Split, 0, len(splits)),
		IsShared:             m.IsShared,
		IsInstallment:        m.IsInstallment,
		SeriesID:             m.SeriesID.String,
		InstallmentIndex:     int(m.InstallmentIndex.Int32),
		InstallmentTotal:     int(m.InstallmentTotal.Int32),
		IsSettled:            m.IsSettled,
		IsRefund:             m.IsRefund,
		Deleted:              m.Deleted,
		TripID:               fromNullString(m.TripID),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
	if m.DestinationAmount.Valid {
		v := m.DestinationAmount.Decimal
		d.DestinationAmount = &v
	}
	for _, s := range splits {
		split := domain.Split{
			MemberID:       s.MemberID,
			AssignedAmount: s.AssignedAmount,
			IsSettled:      s.IsSettled,
		}
		if s.SettledAt.Valid {
			t := s.SettledAt.Time
			split.SettledAt = &t
		}
		d.Splits = append(d.Splits, split)
	}
	return d
}
