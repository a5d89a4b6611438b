package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/core/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountReaderSvc
	mockReconciler  *MockReconcilerSvc
	mockAuthorizer  *MockAuthorizer
	service         portssvc.JournalSvcFacade
	customerAccount domain.Account
	salesAccount    domain.Account
	supplierAccount domain.Account
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountReaderSvc)
	suite.mockReconciler = new(MockReconcilerSvc)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAccountSvc,
		suite.mockReconciler,
		services.WithJournalAuthorizer(suite.mockAuthorizer),
	)

	suite.userID = uuid.NewString()

	suite.customerAccount = domain.Account{
		AccountID:      uuid.NewString(),
		Code:           "CUS2026-0001",
		Name:           "Al Noor Trading",
		Category:       domain.CategoryCustomer,
		OpeningBalance: decimal.NewFromInt(500),
		IsActive:       true,
	}
	suite.salesAccount = domain.Account{
		AccountID: uuid.NewString(),
		Code:      "BRN2026-0001",
		Name:      "Main Branch",
		Category:  domain.CategoryBranch,
		IsActive:  true,
	}
	suite.supplierAccount = domain.Account{
		AccountID: uuid.NewString(),
		Code:      "SUP2026-0001",
		Name:      "Gulf Supplies Co",
		Category:  domain.CategorySupplier,
		IsActive:  true,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestPostTransaction_CreditSaleWithTax() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		AccountName:   suite.customerAccount.Name,
		OffsetAccount: suite.salesAccount.Name,
		OperationType: domain.OpCreditSale,
		BaseAmount:    decimal.NewFromInt(1000),
		ApplyTax:      true,
		Description:   "10 cartons",
		Date:          "2026-01-01",
	}

	suite.mockAccountSvc.On("GetAccountByName", ctx, suite.customerAccount.Name).Return(&suite.customerAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByName", ctx, suite.salesAccount.Name).Return(&suite.salesAccount, nil).Once()

	var savedEntry domain.JournalEntry
	var savedDeltas map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
			savedDeltas = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(int64(42), nil).Once()

	entry, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(int64(42), entry.ID)

	// 15% tax on 1000, and a credit sale credits the customer.
	suite.True(savedEntry.TaxAmount.Equal(decimal.NewFromInt(150)), "tax = %s", savedEntry.TaxAmount)
	suite.True(savedEntry.TotalAmount.Equal(decimal.NewFromInt(1150)))
	suite.True(savedEntry.Debit.IsZero())
	suite.True(savedEntry.Credit.Equal(decimal.NewFromInt(1150)))
	suite.Equal(suite.customerAccount.AccountID, savedEntry.AccountID)
	suite.Equal(suite.salesAccount.AccountID, savedEntry.OffsetAccountID)

	// Deferred op posted without a due date defaults to entry date + 30 days.
	suite.Require().NotNil(savedEntry.DueDate)
	suite.Equal("2026-01-31", savedEntry.DueDate.Format("2006-01-02"))

	// Generated reference carries the sale prefix.
	suite.Contains(savedEntry.Reference, "INV-")

	// Mirrored effects: the customer balance falls, the offset rises.
	suite.Require().Len(savedDeltas, 2)
	suite.True(savedDeltas[suite.customerAccount.AccountID].Equal(decimal.NewFromInt(-1150)))
	suite.True(savedDeltas[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(1150)))

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostTransaction_CashPurchaseNoTax() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		AccountName:   suite.supplierAccount.Name,
		OperationType: domain.OpCashPurchase,
		BaseAmount:    decimal.NewFromInt(200),
		Reference:     "VCH-MANUAL-7",
		Date:          "2026-02-15",
	}

	suite.mockAccountSvc.On("GetAccountByName", ctx, suite.supplierAccount.Name).Return(&suite.supplierAccount, nil).Once()

	var savedEntry domain.JournalEntry
	var savedDeltas map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
			savedDeltas = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(int64(7), nil).Once()

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(savedEntry.TaxAmount.IsZero())
	suite.True(savedEntry.TotalAmount.Equal(decimal.NewFromInt(200)))
	// Expense side debits the primary account.
	suite.True(savedEntry.Debit.Equal(decimal.NewFromInt(200)))
	suite.True(savedEntry.Credit.IsZero())
	// Cash operations never carry a due date.
	suite.Nil(savedEntry.DueDate)
	// Explicit references are kept verbatim.
	suite.Equal("VCH-MANUAL-7", savedEntry.Reference)
	// No offset named, so only the primary account moves.
	suite.Require().Len(savedDeltas, 1)
	suite.True(savedDeltas[suite.supplierAccount.AccountID].Equal(decimal.NewFromInt(200)))
}

func (suite *JournalServiceTestSuite) TestPostTransaction_ExplicitDueDateKept() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		AccountName:   suite.supplierAccount.Name,
		OperationType: domain.OpCreditPurchase,
		BaseAmount:    decimal.NewFromInt(300),
		Date:          "2026-01-10",
		DueDate:       "2026-04-01",
	}

	suite.mockAccountSvc.On("GetAccountByName", ctx, suite.supplierAccount.Name).Return(&suite.supplierAccount, nil).Once()

	var savedEntry domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
		}).
		Return(int64(9), nil).Once()

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(savedEntry.DueDate)
	suite.Equal("2026-04-01", savedEntry.DueDate.Format("2006-01-02"))
}

func (suite *JournalServiceTestSuite) TestPostTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		AccountName:   suite.customerAccount.Name,
		OperationType: domain.OpCashSale,
		BaseAmount:    decimal.Zero,
		Date:          "2026-01-01",
	}

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_UnknownOperationType() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		AccountName:   suite.customerAccount.Name,
		OperationType: "BARTER",
		BaseAmount:    decimal.NewFromInt(100),
		Date:          "2026-01-01",
	}

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_MalformedDate() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		AccountName:   suite.customerAccount.Name,
		OperationType: domain.OpCashSale,
		BaseAmount:    decimal.NewFromInt(100),
		Date:          "01/05/2026",
	}

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_UnknownAccount() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		AccountName:   "No Such Shop",
		OperationType: domain.OpCashSale,
		BaseAmount:    decimal.NewFromInt(100),
		Date:          "2026-01-01",
	}

	suite.mockAccountSvc.On("GetAccountByName", ctx, "No Such Shop").Return(nil, apperrors.ErrUnknownAccount).Once()

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownAccount)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_StoreWriteFailure() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		AccountName:   suite.customerAccount.Name,
		OperationType: domain.OpCashSale,
		BaseAmount:    decimal.NewFromInt(100),
		Date:          "2026-01-01",
	}

	suite.mockAccountSvc.On("GetAccountByName", ctx, suite.customerAccount.Name).Return(&suite.customerAccount, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Return(int64(0), assert.AnError).Once()

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStoreWrite)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_ReDerivesAmountsAndReconciles() {
	ctx := context.Background()
	existing := &domain.JournalEntry{
		ID:            11,
		EntryDate:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		AccountID:     suite.customerAccount.AccountID,
		AccountName:   suite.customerAccount.Name,
		OperationType: domain.OpCreditSale,
		BaseAmount:    decimal.NewFromInt(1000),
		TaxAmount:     decimal.NewFromInt(150),
		TotalAmount:   decimal.NewFromInt(1150),
		Credit:        decimal.NewFromInt(1150),
	}
	newBase := decimal.NewFromInt(2000)
	req := dto.UpdateJournalEntryRequest{BaseAmount: &newBase}

	suite.mockJournalRepo.On("FindEntryByID", ctx, int64(11)).Return(existing, nil).Once()

	var updated domain.JournalEntry
	suite.mockJournalRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.JournalEntry)
		}).
		Return(nil).Once()
	suite.mockReconciler.On("RecomputeBalance", ctx, suite.customerAccount.Name).Return(decimal.Zero, nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, 11, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	// The original posting was taxed, so the edit stays taxed.
	suite.True(updated.TaxAmount.Equal(decimal.NewFromInt(300)))
	suite.True(updated.TotalAmount.Equal(decimal.NewFromInt(2300)))
	suite.True(updated.Credit.Equal(decimal.NewFromInt(2300)))
	suite.True(updated.Debit.IsZero())
	// The op type never changes on edit.
	suite.Equal(domain.OpCreditSale, updated.OperationType)

	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_MoveToAnotherAccountReconcilesBoth() {
	ctx := context.Background()
	existing := &domain.JournalEntry{
		ID:            12,
		AccountID:     suite.customerAccount.AccountID,
		AccountName:   suite.customerAccount.Name,
		OperationType: domain.OpCashSale,
		BaseAmount:    decimal.NewFromInt(100),
		TotalAmount:   decimal.NewFromInt(100),
		Credit:        decimal.NewFromInt(100),
	}
	newName := suite.supplierAccount.Name
	req := dto.UpdateJournalEntryRequest{AccountName: &newName}

	suite.mockJournalRepo.On("FindEntryByID", ctx, int64(12)).Return(existing, nil).Once()
	suite.mockAccountSvc.On("GetAccountByName", ctx, newName).Return(&suite.supplierAccount, nil).Once()
	suite.mockJournalRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockReconciler.On("RecomputeBalance", ctx, suite.customerAccount.Name).Return(decimal.Zero, nil).Once()
	suite.mockReconciler.On("RecomputeBalance", ctx, suite.supplierAccount.Name).Return(decimal.Zero, nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, 12, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.supplierAccount.AccountID, entry.AccountID)
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_RequiresCapability() {
	ctx := context.Background()

	suite.mockAuthorizer.On("Require", ctx, suite.userID, domain.CapDeleteEntry).Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeleteEntry(ctx, 5, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Success() {
	ctx := context.Background()
	existing := &domain.JournalEntry{
		ID:              5,
		AccountID:       suite.customerAccount.AccountID,
		AccountName:     suite.customerAccount.Name,
		OffsetAccountID: suite.salesAccount.AccountID,
		OffsetAccount:   suite.salesAccount.Name,
		OperationType:   domain.OpCreditSale,
		Reference:       "INV-2601051010",
	}

	suite.mockAuthorizer.On("Require", ctx, suite.userID, domain.CapDeleteEntry).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, int64(5)).Return(existing, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", ctx, int64(5)).Return(nil).Once()
	suite.mockReconciler.On("RecomputeBalance", ctx, suite.customerAccount.Name).Return(decimal.Zero, nil).Once()
	suite.mockReconciler.On("RecomputeBalance", ctx, suite.salesAccount.Name).Return(decimal.Zero, nil).Once()

	err := suite.service.DeleteEntry(ctx, 5, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestSearchEntries_EmptyQuery() {
	ctx := context.Background()

	_, err := suite.service.SearchEntries(ctx, "", 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
