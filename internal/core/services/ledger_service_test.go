package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	txRepo      *MockTransactionRepository
	memberRepo  *MockMemberRepository
	service     portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.txRepo = new(MockTransactionRepository)
	suite.memberRepo = new(MockMemberRepository)
	suite.service = services.NewLedgerService(suite.accountRepo, suite.txRepo, suite.memberRepo)
}

func (suite *LedgerServiceTestSuite) TestBalances_Success() {
	accounts := []domain.Account{{AccountID: "acc-1", CurrencyCode: "BRL", InitialBalance: dec("100")}}
	txs := []domain.Transaction{
		{TransactionID: "t1", Kind: domain.KindExpense, Amount: dec("30"), CurrencyCode: "BRL", Date: testDate(1), SourceAccountID: "acc-1"},
		{TransactionID: "t2", Kind: domain.KindIncome, Amount: dec("5"), CurrencyCode: "BRL", Date: testDate(20), SourceAccountID: "acc-1"},
		{TransactionID: "t3", Kind: domain.KindExpense, Amount: dec("1"), CurrencyCode: "BRL", Date: testDate(2), SourceAccountID: "gone"},
	}
	suite.accountRepo.On("ListAccounts", mock.Anything, testWorkplace).Return(accounts, nil).Once()
	suite.txRepo.On("ListTransactions", mock.Anything, testWorkplace).Return(txs, nil).Once()
	suite.memberRepo.On("ListMembers", mock.Anything, testWorkplace).Return(testMembers(), nil).Once()

	cutoff := testDate(10)
	res, err := suite.service.Balances(context.Background(), testWorkplace, &cutoff, testUser)

	suite.Require().NoError(err)
	acc, ok := res.Account("acc-1")
	suite.Require().True(ok)
	suite.Equal("70.00", acc.Balance.StringFixed(2))
	suite.Len(res.Issues, 1)
	suite.Equal(domain.IssueReferentialIntegrity, res.Issues[0].Kind)
	suite.accountRepo.AssertExpectations(suite.T())
	suite.txRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestBalances_RepositoryError() {
	dbErr := errors.New("connection refused")
	suite.accountRepo.On("ListAccounts", mock.Anything, testWorkplace).Return([]domain.Account{}, nil).Maybe()
	suite.txRepo.On("ListTransactions", mock.Anything, testWorkplace).Return(nil, dbErr).Once()
	suite.memberRepo.On("ListMembers", mock.Anything, testWorkplace).Return(testMembers(), nil).Maybe()

	res, err := suite.service.Balances(context.Background(), testWorkplace, nil, testUser)

	suite.Nil(res)
	suite.ErrorIs(err, dbErr)
}

func (suite *LedgerServiceTestSuite) TestBalances_PaidUnderOwnMemberID() {
	accounts := []domain.Account{{AccountID: "acc-1", CurrencyCode: "BRL", InitialBalance: dec("500")}}
	tx := sharedExpense("t1", "100", domain.Split{MemberID: "m-ana", AssignedAmount: dec("40")})
	tx.PayerID = strPtr("m-self")
	suite.accountRepo.On("ListAccounts", mock.Anything, testWorkplace).Return(accounts, nil).Once()
	suite.txRepo.On("ListTransactions", mock.Anything, testWorkplace).Return([]domain.Transaction{tx}, nil).Once()
	suite.memberRepo.On("ListMembers", mock.Anything, testWorkplace).Return(testMembers(), nil).Once()

	res, err := suite.service.Balances(context.Background(), testWorkplace, nil, testUser)

	suite.Require().NoError(err)
	acc, ok := res.Account("acc-1")
	suite.Require().True(ok)
	suite.Equal("400.00", acc.Balance.StringFixed(2))
	suite.Empty(res.Issues)
	suite.memberRepo.AssertExpectations(suite.T())
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
