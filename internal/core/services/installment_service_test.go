package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InstallmentServiceTestSuite struct {
	suite.Suite
	txRepo   *MockTransactionRepository
	observer *recordingObserver
	now      time.Time
	service  portssvc.InstallmentSvcFacade
}

func (suite *InstallmentServiceTestSuite) SetupTest() {
	suite.txRepo = new(MockTransactionRepository)
	suite.observer = &recordingObserver{}
	suite.now = time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)

	next := 0
	suite.service = services.NewInstallmentService(suite.txRepo,
		services.WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("id-%d", next)
		}),
		services.WithInstallmentObservers(suite.observer),
		services.WithInstallmentClock(func() time.Time { return suite.now }),
	)
}

func (suite *InstallmentServiceTestSuite) purchase(count int) dto.CreateInstallmentSeriesRequest {
	return dto.CreateInstallmentSeriesRequest{
		Kind:            domain.KindExpense,
		Amount:          dec("100"),
		CurrencyCode:    "BRL",
		Date:            time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Description:     "Laptop",
		SourceAccountID: "acc-card",
		Splits:          []dto.SplitRequest{{MemberID: "m-ana", AssignedAmount: dec("50")}},
		IsShared:        true,
		Count:           count,
	}
}

func (suite *InstallmentServiceTestSuite) TestCreateSeries_Success() {
	suite.txRepo.On("SaveInstallmentSeries", mock.Anything, mock.MatchedBy(func(series []domain.Transaction) bool {
		return len(series) == 3 && series[0].SeriesID == "id-1"
	})).Return(nil).Once()

	series, err := suite.service.CreateSeries(context.Background(), testWorkplace, suite.purchase(3), testUser)

	suite.Require().NoError(err)
	suite.Require().Len(series, 3)
	suite.Equal([]string{"33.33", "33.33", "33.34"}, []string{
		series[0].Amount.StringFixed(2), series[1].Amount.StringFixed(2), series[2].Amount.StringFixed(2),
	})
	suite.Equal("2024-02-29", series[1].Date.Format(time.DateOnly))
	for i, tx := range series {
		suite.Equal(testWorkplace, tx.WorkplaceID)
		suite.Equal(i+1, tx.InstallmentIndex)
		suite.Equal(testUser, tx.CreatedBy)
		suite.Equal(suite.now, tx.CreatedAt)
	}

	suite.Require().Len(suite.observer.events, 1)
	event := suite.observer.events[0]
	suite.Equal(portscache.ReasonSeriesCreated, event.Reason)
	suite.Equal([]string{"id-2", "id-3", "id-4"}, event.TransactionIDs)
	suite.txRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestCreateSeries_SaveError() {
	dbErr := errors.New("unique violation")
	suite.txRepo.On("SaveInstallmentSeries", mock.Anything, mock.Anything).Return(dbErr).Once()

	series, err := suite.service.CreateSeries(context.Background(), testWorkplace, suite.purchase(2), testUser)

	suite.Nil(series)
	suite.ErrorIs(err, dbErr)
	suite.Empty(suite.observer.events)
}

func (suite *InstallmentServiceTestSuite) TestCreateSeries_ZeroCount() {
	series, err := suite.service.CreateSeries(context.Background(), testWorkplace, suite.purchase(0), testUser)

	suite.Nil(series)
	suite.ErrorIs(err, apperrors.ErrDivisionByZero)
	suite.txRepo.AssertNotCalled(suite.T(), "SaveInstallmentSeries", mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestCreateSeries_InvalidPurchase() {
	req := suite.purchase(2)
	req.Splits = []dto.SplitRequest{{MemberID: "m-ana", AssignedAmount: dec("150")}}

	_, err := suite.service.CreateSeries(context.Background(), testWorkplace, req, testUser)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.txRepo.AssertNotCalled(suite.T(), "SaveInstallmentSeries", mock.Anything, mock.Anything)
}

func TestInstallmentService(t *testing.T) {
	suite.Run(t, new(InstallmentServiceTestSuite))
}
