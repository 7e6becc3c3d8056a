package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
	portssvc "github.com/gestinov/ledger_backend/internal/core/ports/services"
	"github.com/gestinov/ledger_backend/internal/core/services"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// --- Test Suite Setup ---
type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	service        portssvc.PeriodSvcFacade
	userID         string
	september      domain.Period
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo)
	suite.userID = uuid.NewString()

	suite.september = domain.Period{
		PeriodID:  uuid.NewString(),
		Code:      "2025-09",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{Code: "2025-09", StartDate: "2025-09-01", EndDate: "2025-09-30"}

	suite.mockPeriodRepo.On("FindOverlappingPeriod", ctx,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.NotEmpty(period.PeriodID)
	suite.Equal("2025-09", period.Code)
	suite.False(period.Closed, "new periods start open")
	suite.Equal(suite.userID, period.CreatedBy)

	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_InvalidRange() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{Code: "2025-09", StartDate: "2025-09-30", EndDate: "2025-09-01"}

	_, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRange)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Overlap() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{Code: "2025-Q3", StartDate: "2025-09-15", EndDate: "2025-10-15"}

	suite.mockPeriodRepo.On("FindOverlappingPeriod", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(&suite.september, nil).Once()

	_, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverlappingPeriod)
	suite.Contains(err.Error(), "2025-09", "conflicting period code is named")
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.september.PeriodID).Return(&suite.september, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriod", ctx, suite.september.PeriodID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	period, err := suite.service.ClosePeriod(ctx, suite.september.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.True(period.Closed)
	suite.Equal(suite.userID, period.LastUpdatedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	suite.september.Closed = true

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.september.PeriodID).Return(&suite.september, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, suite.september.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "ClosePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestDeletePeriod_Success() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.september.PeriodID).Return(&suite.september, nil).Once()
	suite.mockPeriodRepo.On("IsPeriodReferenced", ctx, suite.september.PeriodID).Return(false, nil).Once()
	suite.mockPeriodRepo.On("DeletePeriod", ctx, suite.september.PeriodID).Return(nil).Once()

	err := suite.service.DeletePeriod(ctx, suite.september.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestDeletePeriod_ClosedRefused() {
	ctx := context.Background()
	suite.september.Closed = true

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.september.PeriodID).Return(&suite.september, nil).Once()

	err := suite.service.DeletePeriod(ctx, suite.september.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClosedPeriod)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "DeletePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestDeletePeriod_ReferencedRefused() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.september.PeriodID).Return(&suite.september, nil).Once()
	suite.mockPeriodRepo.On("IsPeriodReferenced", ctx, suite.september.PeriodID).Return(true, nil).Once()

	err := suite.service.DeletePeriod(ctx, suite.september.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReferencedEntity)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "DeletePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestListPeriods_EmptyResult() {
	ctx := context.Background()
	suite.mockPeriodRepo.On("ListPeriods", ctx).Return([]domain.Period{}, nil).Once()

	periods, err := suite.service.ListPeriods(ctx)

	suite.Require().NoError(err)
	suite.NotNil(periods)
	suite.Empty(periods)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
