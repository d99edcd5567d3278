package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock repositories ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, workplaceID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, workplaceID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, workplaceID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveInstallmentSeries(ctx context.Context, series []domain.Transaction) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkSplitsSettled(ctx context.Context, workplaceID string, transactionID string, memberIDs []string, userID string, at time.Time) error {
	args := m.Called(ctx, workplaceID, transactionID, memberIDs, userID, at)
	return args.Error(0)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, workplaceID string) ([]domain.Member, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portsrepo.AccountRepositoryFacade     = (*MockAccountRepository)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)
	_ portsrepo.MemberRepositoryFacade      = (*MockMemberRepository)(nil)
)

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	events []portscache.InvoiceEvent
}

func (o *recordingObserver) InvoicesChanged(_ context.Context, event portscache.InvoiceEvent) {
	o.events = append(o.events, event)
}

// --- Fixtures ---

const (
	testWorkplace = "wp-1"
	testUser      = "user-self"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func testDate(d int) time.Time {
	return time.Date(2024, 6, d, 12, 0, 0, 0, time.UTC)
}

func testMembers() []domain.Member {
	return []domain.Member{
		{MemberID: "m-self", Name: "Me", LinkedUserID: strPtr(testUser)},
		{MemberID: "m-ana", Name: "Ana", LinkedUserID: strPtr("user-ana")},
	}
}

func sharedExpense(id string, amount string, splits ...domain.Split) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		WorkplaceID:     testWorkplace,
		Kind:            domain.KindExpense,
		Amount:          dec(amount),
		CurrencyCode:    "BRL",
		Date:            testDate(1),
		SourceAccountID: "acc-1",
		Splits:          splits,
		IsShared:        true,
	}
}
