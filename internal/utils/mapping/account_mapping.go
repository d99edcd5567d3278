package mapping

import (
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
// The derived Balance is never persisted.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		WorkplaceID:    d.WorkplaceID,
		Name:           d.Name,
		AccountType:    models.AccountType(d.AccountType),
		CurrencyCode:   d.CurrencyCode,
		InitialBalance: d.InitialBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		WorkplaceID:    m.WorkplaceID,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		CurrencyCode:   m.CurrencyCode,
		InitialBalance: m.InitialBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
