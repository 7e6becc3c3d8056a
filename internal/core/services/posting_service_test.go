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
type PostingServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	mockPeriodRepo  *MockPeriodRepository
	service         portssvc.PostingSvcFacade

	journal    domain.Journal
	period     domain.Period
	receivable domain.Account
	sales      domain.Account
	accounts   map[string]domain.Account
	userID     string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.service = services.NewPostingService(suite.mockEntryRepo, suite.mockAccountRepo, suite.mockJournalRepo, suite.mockPeriodRepo)

	suite.userID = uuid.NewString()

	suite.journal = domain.Journal{
		JournalID: uuid.NewString(),
		Code:      "VENTES",
		Label:     "Sales journal",
		Active:    true,
	}
	suite.period = domain.Period{
		PeriodID:  uuid.NewString(),
		Code:      "2025-09",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}
	suite.receivable = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "411000",
		Label:       "Clients",
		AccountType: domain.Asset,
		AllowEntry:  true,
		Active:      true,
	}
	suite.sales = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "701000",
		Label:       "Ventes de produits finis",
		AccountType: domain.Revenue,
		AllowEntry:  true,
		Active:      true,
	}
	suite.accounts = map[string]domain.Account{
		suite.receivable.AccountID: suite.receivable,
		suite.sales.AccountID:      suite.sales,
	}
}

// saleRequest is a balanced 1000.00 sale draft payload.
func (suite *PostingServiceTestSuite) saleRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Label:     "Invoice 2025-091",
		Date:      "2025-09-15",
		JournalID: suite.journal.JournalID,
		PeriodID:  suite.period.PeriodID,
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.receivable.AccountID, Debit: 100000},
			{AccountID: suite.sales.AccountID, Credit: 100000},
		},
	}
}

// saleDraft is the persisted counterpart of saleRequest.
func (suite *PostingServiceTestSuite) saleDraft() *domain.Entry {
	entryID := uuid.NewString()
	return &domain.Entry{
		EntryID:   entryID,
		Label:     "Invoice 2025-091",
		Date:      time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		JournalID: suite.journal.JournalID,
		PeriodID:  suite.period.PeriodID,
		Lines: []domain.EntryLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.receivable.AccountID, Debit: 100000},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.sales.AccountID, Credit: 100000},
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Date(2025, 9, 15, 9, 0, 0, 0, time.UTC),
			CreatedBy:     suite.userID,
			LastUpdatedAt: time.Date(2025, 9, 15, 9, 0, 0, 0, time.UTC),
			LastUpdatedBy: suite.userID,
		},
	}
}

func (suite *PostingServiceTestSuite) expectRegistryState() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.journal.JournalID).Return(&suite.journal, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accounts, nil).Once()
}

// --- CreateDraft ---

func (suite *PostingServiceTestSuite) TestCreateDraft_Success() {
	ctx := context.Background()
	suite.expectRegistryState()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.Entry")).Return(nil).Once()

	entry, err := suite.service.CreateDraft(ctx, suite.saleRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.False(entry.Validated)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Equal(int64(100000), entry.TotalDebit())
	suite.Equal(int64(100000), entry.TotalCredit())
	suite.True(entry.IsBalanced())

	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateDraft_InactiveJournal() {
	ctx := context.Background()
	suite.journal.Active = false
	suite.expectRegistryState()

	_, err := suite.service.CreateDraft(ctx, suite.saleRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInactiveJournal)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateDraft_ClosedPeriod() {
	ctx := context.Background()
	suite.period.Closed = true
	suite.expectRegistryState()

	_, err := suite.service.CreateDraft(ctx, suite.saleRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClosedPeriod)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateDraft_Unbalanced() {
	ctx := context.Background()
	suite.expectRegistryState()

	req := suite.saleRequest()
	req.Lines[1].Credit = 90000

	_, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateDraft_UnknownJournal() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.journal.JournalID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateDraft(ctx, suite.saleRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestCreateDraft_BadDate() {
	ctx := context.Background()
	req := suite.saleRequest()
	req.Date = "15/09/2025"

	_, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournalByID", mock.Anything, mock.Anything)
}

// --- ValidateEntry ---

func (suite *PostingServiceTestSuite) TestValidateEntry_Success() {
	ctx := context.Background()
	draft := suite.saleDraft()

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()
	suite.expectRegistryState()
	suite.mockEntryRepo.On("PostEntry", ctx, draft.EntryID, draft.LastUpdatedAt, mock.MatchedBy(func(changes map[string]int64) bool {
		// Debit-normal receivable goes up, credit-normal sales goes up.
		return changes[suite.receivable.AccountID] == 100000 && changes[suite.sales.AccountID] == 100000
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.ValidateEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.Validated)
	suite.Equal(suite.userID, entry.LastUpdatedBy)

	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestValidateEntry_Idempotent() {
	ctx := context.Background()
	draft := suite.saleDraft()
	draft.Validated = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()

	entry, err := suite.service.ValidateEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.Validated)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournalByID", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestValidateEntry_LostRace() {
	ctx := context.Background()
	draft := suite.saleDraft()

	validated := *draft
	validated.Validated = true

	// First fetch sees a draft; the posting attempt loses the row lock race
	// and the re-fetch returns the concurrently validated entry.
	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()
	suite.expectRegistryState()
	suite.mockEntryRepo.On("PostEntry", ctx, draft.EntryID, draft.LastUpdatedAt, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrAlreadyValidated).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(&validated, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()

	entry, err := suite.service.ValidateEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.Validated)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestValidateEntry_RecomputesAfterConcurrentDraftUpdate() {
	ctx := context.Background()
	draft := suite.saleDraft()

	bank := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "512000",
		Label:       "Banque",
		AccountType: domain.Asset,
		AllowEntry:  true,
		Active:      true,
	}

	// The draft the second read sees: a concurrent update moved the debit
	// from the receivable to the bank account and bumped the row version.
	updated := *draft
	updated.Lines = []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: draft.EntryID, AccountID: bank.AccountID, Debit: 100000},
		{LineID: uuid.NewString(), EntryID: draft.EntryID, AccountID: suite.sales.AccountID, Credit: 100000},
	}
	updated.LastUpdatedAt = draft.LastUpdatedAt.Add(5 * time.Minute)

	// First attempt reads the old lines; the repository detects the version
	// mismatch under the row lock and refuses to apply their deltas.
	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()
	suite.expectRegistryState()
	suite.mockEntryRepo.On("PostEntry", ctx, draft.EntryID, draft.LastUpdatedAt, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrStaleEntry).Once()

	// Second attempt re-reads, re-validates and posts deltas derived from the
	// current lines: the bank moves, the receivable stays untouched.
	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(&updated, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(updated.Lines, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.journal.JournalID).Return(&suite.journal, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.Account{
		bank.AccountID:        bank,
		suite.sales.AccountID: suite.sales,
	}, nil).Once()
	suite.mockEntryRepo.On("PostEntry", ctx, draft.EntryID, updated.LastUpdatedAt, mock.MatchedBy(func(changes map[string]int64) bool {
		_, touchesReceivable := changes[suite.receivable.AccountID]
		return changes[bank.AccountID] == 100000 && changes[suite.sales.AccountID] == 100000 && !touchesReceivable
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.ValidateEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.Validated)
	suite.Equal(bank.AccountID, entry.Lines[0].AccountID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestValidateEntry_GivesUpWhenEntryKeepsChanging() {
	ctx := context.Background()
	draft := suite.saleDraft()

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Times(3)
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Times(3)
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.journal.JournalID).Return(&suite.journal, nil).Times(3)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Times(3)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accounts, nil).Times(3)
	suite.mockEntryRepo.On("PostEntry", ctx, draft.EntryID, draft.LastUpdatedAt, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrStaleEntry).Times(3)

	_, err := suite.service.ValidateEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStaleEntry)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestValidateEntry_PeriodClosedSinceDraft() {
	ctx := context.Background()
	draft := suite.saleDraft()
	suite.period.Closed = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()
	suite.expectRegistryState()

	_, err := suite.service.ValidateEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClosedPeriod)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestValidateEntry_JournalDeactivatedSinceDraft() {
	ctx := context.Background()
	draft := suite.saleDraft()
	suite.journal.Active = false

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()
	suite.expectRegistryState()

	_, err := suite.service.ValidateEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInactiveJournal)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestValidateEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ValidateEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateDraft ---

func (suite *PostingServiceTestSuite) TestUpdateDraft_Success() {
	ctx := context.Background()
	draft := suite.saleDraft()

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.expectRegistryState()
	suite.mockEntryRepo.On("ReplaceEntry", ctx, mock.AnythingOfType("domain.Entry")).Return(nil).Once()

	req := suite.saleRequest()
	req.Label = "Invoice 2025-091 corrected"

	entry, err := suite.service.UpdateDraft(ctx, draft.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Invoice 2025-091 corrected", entry.Label)
	suite.Equal(draft.CreatedBy, entry.CreatedBy, "creation audit fields survive the rewrite")
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestUpdateDraft_ValidatedRefused() {
	ctx := context.Background()
	draft := suite.saleDraft()
	draft.Validated = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()

	_, err := suite.service.UpdateDraft(ctx, draft.EntryID, suite.saleRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyValidated)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestUpdateDraft_ClosedPeriodRefused() {
	ctx := context.Background()
	draft := suite.saleDraft()
	suite.period.Closed = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, draft.EntryID).Return(draft.Lines, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()

	_, err := suite.service.UpdateDraft(ctx, draft.EntryID, suite.saleRequest(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClosedPeriod)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceEntry", mock.Anything, mock.Anything)
}

// --- RejectEntry ---

func (suite *PostingServiceTestSuite) TestRejectEntry_Success() {
	ctx := context.Background()
	draft := suite.saleDraft()

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockEntryRepo.On("DeleteEntry", ctx, draft.EntryID).Return(nil).Once()

	err := suite.service.RejectEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestRejectEntry_ValidatedRefused() {
	ctx := context.Background()
	draft := suite.saleDraft()
	draft.Validated = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()

	err := suite.service.RejectEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyValidated)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestRejectEntry_ClosedPeriodRefused() {
	ctx := context.Background()
	draft := suite.saleDraft()
	suite.period.Closed = true

	suite.mockEntryRepo.On("FindEntryByID", ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()

	err := suite.service.RejectEntry(ctx, draft.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClosedPeriod)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

// --- ListEntries ---

func (suite *PostingServiceTestSuite) TestListEntries_BadFromDate() {
	ctx := context.Background()

	_, _, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{From: "not-a-date"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestListEntries_EmptyResult() {
	ctx := context.Background()
	suite.mockEntryRepo.On("ListEntries", ctx, mock.AnythingOfType("repositories.EntryListFilter"), 20, (*string)(nil)).Return([]domain.Entry{}, nil, nil).Once()

	entries, nextToken, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{Limit: 20})

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)
	suite.Nil(nextToken)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
