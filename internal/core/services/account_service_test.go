package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/gestinov/ledger_backend/internal/core/ports/services"
	"github.com/gestinov/ledger_backend/internal/core/services"
	"github.com/gestinov/ledger_backend/internal/dto"
)

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
	receivable      domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()

	suite.receivable = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "411000",
		Label:       "Clients",
		AccountType: domain.Asset,
		AllowEntry:  true,
		Active:      true,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "701000",
		Label:       "Ventes de produits finis",
		AccountType: domain.Revenue,
		AllowEntry:  true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "701000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("701000", account.Code)
	suite.True(account.Active, "new accounts start active")
	suite.Equal(int64(0), account.Balance, "new accounts start at zero balance")
	suite.Equal(suite.userID, account.CreatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "411000", Label: "Clients bis", AccountType: domain.Asset}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "411000").Return(&suite.receivable, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_LabelOnly() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	req := dto.UpdateAccountRequest{Label: stringPtr("Clients et comptes rattaches")}
	account, err := suite.service.UpdateAccount(ctx, suite.receivable.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Clients et comptes rattaches", account.Label)
	suite.Equal(suite.userID, account.LastUpdatedBy)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "IsAccountReferenced", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CodeFrozenByValidatedEntries() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("IsAccountReferenced", ctx, suite.receivable.AccountID).Return(true, true, nil).Once()

	req := dto.UpdateAccountRequest{Code: stringPtr("411100")}
	_, err := suite.service.UpdateAccount(ctx, suite.receivable.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableField)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CodeChangeOnDraftOnlyReferences() {
	ctx := context.Background()

	// Draft references alone do not freeze the code.
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("IsAccountReferenced", ctx, suite.receivable.AccountID).Return(true, false, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "411100").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	req := dto.UpdateAccountRequest{Code: stringPtr("411100")}
	account, err := suite.service.UpdateAccount(ctx, suite.receivable.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("411100", account.Code)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFields() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.receivable.AccountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.receivable.Code, account.Code)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Deactivate() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	req := dto.UpdateAccountRequest{Active: boolPtr(false)}
	account, err := suite.service.UpdateAccount(ctx, suite.receivable.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(account.Active)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("IsAccountReferenced", ctx, suite.receivable.AccountID).Return(false, false, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, suite.receivable.AccountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.receivable.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ReferencedRefused() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockAccountRepo.On("IsAccountReferenced", ctx, suite.receivable.AccountID).Return(true, false, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.receivable.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReferencedEntity)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyResult() {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListAccounts", ctx, mock.AnythingOfType("repositories.AccountListFilter"), 50, (*string)(nil)).Return([]domain.Account{}, nil, nil).Once()

	accounts, nextToken, err := suite.service.ListAccounts(ctx, portsrepo.AccountListFilter{}, 50, nil)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
	suite.Nil(nextToken)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
