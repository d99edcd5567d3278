package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/splitledger/internal/adapters/cache"
	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	txRepo     *MockTransactionRepository
	memberRepo *MockMemberRepository
	cache      *cache.LRUInvoiceCache
	observer   *recordingObserver
	now        time.Time
	service    portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.txRepo = new(MockTransactionRepository)
	suite.memberRepo = new(MockMemberRepository)
	suite.cache = cache.NewInvoiceCache(16, time.Minute)
	suite.observer = &recordingObserver{}
	suite.now = time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewInvoiceService(suite.txRepo, suite.memberRepo,
		services.WithInvoiceCache(suite.cache),
		services.WithInvoiceObservers(suite.cache, suite.observer),
		services.WithInvoiceClock(func() time.Time { return suite.now }),
	)
}

func (suite *InvoiceServiceTestSuite) TestInvoices_BuildsAndCaches() {
	txs := []domain.Transaction{
		sharedExpense("t1", "90", domain.Split{MemberID: "m-ana", AssignedAmount: dec("45")}),
	}
	suite.txRepo.On("ListTransactions", mock.Anything, testWorkplace).Return(txs, nil).Once()
	suite.memberRepo.On("ListMembers", mock.Anything, testWorkplace).Return(testMembers(), nil).Once()

	filter := domain.InvoiceFilter{Status: domain.InvoiceStatusAll}
	first, err := suite.service.Invoices(context.Background(), testWorkplace, filter, testUser)
	suite.Require().NoError(err)
	second, err := suite.service.Invoices(context.Background(), testWorkplace, filter, testUser)
	suite.Require().NoError(err)

	suite.Require().Len(first.Items["m-ana"], 1)
	suite.Equal(domain.InvoiceCredit, first.Items["m-ana"][0].Kind)
	suite.Equal("45.00", first.Items["m-ana"][0].Amount.StringFixed(2))
	suite.Equal(first.MemberIDs(), second.MemberIDs())
	suite.Equal(1, suite.cache.Len())
	suite.txRepo.AssertExpectations(suite.T())
	suite.memberRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestInvoices_RepositoryError() {
	dbErr := errors.New("timeout")
	suite.txRepo.On("ListTransactions", mock.Anything, testWorkplace).Return(nil, dbErr).Once()
	suite.memberRepo.On("ListMembers", mock.Anything, testWorkplace).Return(testMembers(), nil).Maybe()

	book, err := suite.service.Invoices(context.Background(), testWorkplace, domain.InvoiceFilter{}, testUser)

	suite.Nil(book)
	suite.ErrorIs(err, dbErr)
	suite.Equal(0, suite.cache.Len())
}

func (suite *InvoiceServiceTestSuite) TestSettleSplits_Success() {
	tx := sharedExpense("t1", "90",
		domain.Split{MemberID: "m-ana", AssignedAmount: dec("30")},
		domain.Split{MemberID: "m-bob", AssignedAmount: dec("30")},
	)
	suite.cache.Add(portscache.NewInvoiceKey(testWorkplace, testUser, domain.InvoiceFilter{}), suite.emptyBook())

	suite.txRepo.On("FindTransactionByID", mock.Anything, testWorkplace, "t1").Return(&tx, nil).Once()
	suite.txRepo.On("MarkSplitsSettled", mock.Anything, testWorkplace, "t1", []string{"m-ana"}, testUser, suite.now).Return(nil).Once()

	updated, err := suite.service.SettleSplits(context.Background(), testWorkplace, "t1", dto.SettleSplitsRequest{MemberIDs: []string{"m-ana"}}, testUser)

	suite.Require().NoError(err)
	suite.True(updated.Splits[0].IsSettled)
	suite.Require().NotNil(updated.Splits[0].SettledAt)
	suite.Equal(suite.now, *updated.Splits[0].SettledAt)
	suite.False(updated.Splits[1].IsSettled)
	suite.False(updated.IsSettled)
	suite.False(tx.Splits[0].IsSettled, "stored record must not be mutated")

	suite.Equal(0, suite.cache.Len(), "cached invoices of the workplace are dropped")
	suite.Require().Len(suite.observer.events, 1)
	suite.Equal(portscache.ReasonSplitsSettled, suite.observer.events[0].Reason)
	suite.Equal([]string{"m-ana"}, suite.observer.events[0].MemberIDs)
	suite.txRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestSettleSplits_AllOpenSplitsByDefault() {
	tx := sharedExpense("t1", "90",
		domain.Split{MemberID: "m-ana", AssignedAmount: dec("30"), IsSettled: true},
		domain.Split{MemberID: "m-bob", AssignedAmount: dec("30")},
	)
	suite.txRepo.On("FindTransactionByID", mock.Anything, testWorkplace, "t1").Return(&tx, nil).Once()
	suite.txRepo.On("MarkSplitsSettled", mock.Anything, testWorkplace, "t1", []string{"m-bob"}, testUser, suite.now).Return(nil).Once()

	updated, err := suite.service.SettleSplits(context.Background(), testWorkplace, "t1", dto.SettleSplitsRequest{}, testUser)

	suite.Require().NoError(err)
	suite.True(updated.IsSettled)
	suite.txRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestSettleSplits_Rejections() {
	notShared := domain.Transaction{
		TransactionID: "t-plain", Kind: domain.KindExpense, Amount: dec("10"),
		CurrencyCode: "BRL", Date: testDate(1), SourceAccountID: "acc-1",
	}
	deleted := sharedExpense("t-del", "10")
	deleted.Deleted = true
	withSplit := sharedExpense("t1", "10", domain.Split{MemberID: "m-ana", AssignedAmount: dec("5")})

	suite.txRepo.On("FindTransactionByID", mock.Anything, testWorkplace, "t-plain").Return(&notShared, nil)
	suite.txRepo.On("FindTransactionByID", mock.Anything, testWorkplace, "t-del").Return(&deleted, nil)
	suite.txRepo.On("FindTransactionByID", mock.Anything, testWorkplace, "t1").Return(&withSplit, nil)
	suite.txRepo.On("FindTransactionByID", mock.Anything, testWorkplace, "missing").
		Return(nil, fmt.Errorf("%w: transaction missing", apperrors.ErrNotFound))

	tests := []struct {
		name    string
		txID    string
		members []string
		wantErr error
	}{
		{"not shared", "t-plain", nil, apperrors.ErrValidation},
		{"deleted", "t-del", nil, apperrors.ErrNotFound},
		{"unknown member", "t1", []string{"m-zed"}, apperrors.ErrValidation},
		{"missing transaction", "missing", nil, apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.SettleSplits(context.Background(), testWorkplace, tt.txID, dto.SettleSplitsRequest{MemberIDs: tt.members}, testUser)
			suite.ErrorIs(err, tt.wantErr)
		})
	}
	suite.txRepo.AssertNotCalled(suite.T(), "MarkSplitsSettled", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.observer.events)
}

func (suite *InvoiceServiceTestSuite) TestSettleSplits_WriteFailureKeepsCache() {
	tx := sharedExpense("t1", "10", domain.Split{MemberID: "m-ana", AssignedAmount: dec("5")})
	suite.cache.Add(portscache.NewInvoiceKey(testWorkplace, testUser, domain.InvoiceFilter{}), suite.emptyBook())
	dbErr := errors.New("deadlock")
	suite.txRepo.On("FindTransactionByID", mock.Anything, testWorkplace, "t1").Return(&tx, nil).Once()
	suite.txRepo.On("MarkSplitsSettled", mock.Anything, testWorkplace, "t1", []string{"m-ana"}, testUser, suite.now).Return(dbErr).Once()

	_, err := suite.service.SettleSplits(context.Background(), testWorkplace, "t1", dto.SettleSplitsRequest{}, testUser)

	suite.ErrorIs(err, dbErr)
	suite.Equal(1, suite.cache.Len())
	suite.Empty(suite.observer.events)
}

func (suite *InvoiceServiceTestSuite) emptyBook() engine.InvoiceBook {
	return engine.InvoiceBook{Items: map[string][]domain.InvoiceItem{}}
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
