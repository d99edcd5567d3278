package engine_test

import (
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func account(id, currency, initial string) domain.Account {
	return domain.Account{AccountID: id, CurrencyCode: currency, AccountType: domain.Checking, InitialBalance: dec(initial)}
}

func member(id, name string, linkedUser string) domain.Member {
	m := domain.Member{MemberID: id, Name: name}
	if linkedUser != "" {
		m.LinkedUserID = ptr(linkedUser)
	}
	return m
}

func expense(id, source, amount string, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		Kind:            domain.KindExpense,
		Amount:          dec(amount),
		CurrencyCode:    "BRL",
		Date:            date,
		SourceAccountID: source,
	}
}

func income(id, source, amount string, date time.Time) domain.Transaction {
	tx := expense(id, source, amount, date)
	tx.Kind = domain.KindIncome
	return tx
}

func transfer(id, source, destination, amount string, date time.Time) domain.Transaction {
	tx := expense(id, source, amount, date)
	tx.Kind = domain.KindTransfer
	tx.DestinationAccountID = ptr(destination)
	return tx
}

func split(memberID, amount string) domain.Split {
	return domain.Split{MemberID: memberID, AssignedAmount: dec(amount)}
}

func balanceOf(accounts []domain.Account, id string) decimal.Decimal {
	for _, a := range accounts {
		if a.AccountID == id {
			return a.Balance
		}
	}
	return decimal.Zero
}
