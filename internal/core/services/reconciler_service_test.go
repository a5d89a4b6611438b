package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconcilerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.ReconcilerSvc
	account         domain.Account
}

func (suite *ReconcilerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewReconcilerService(suite.mockAccountRepo, suite.mockJournalRepo)

	suite.account = domain.Account{
		AccountID:      uuid.NewString(),
		Name:           "Al Noor Trading",
		Category:       domain.CategoryCustomer,
		OpeningBalance: decimal.NewFromInt(500),
		CurrentBalance: decimal.NewFromInt(999999), // stale on purpose
		IsActive:       true,
	}
}

func (suite *ReconcilerServiceTestSuite) TestRecomputeBalance_FromSourceData() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.account.Name).Return(&suite.account, nil).Once()
	suite.mockJournalRepo.On("SumLegs", ctx, suite.account.AccountID).
		Return(portsrepo.LegTotals{
			Debit:  decimal.NewFromInt(1200),
			Credit: decimal.NewFromInt(300),
		}, nil).Once()

	var persisted decimal.Decimal
	suite.mockAccountRepo.On("SetCurrentBalance", ctx, suite.account.AccountID, mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(2).(decimal.Decimal)
		}).
		Return(nil).Once()

	balance, err := suite.service.RecomputeBalance(ctx, suite.account.Name)

	suite.Require().NoError(err)
	// 500 opening + 1200 debits - 300 credits, ignoring the stale cache.
	suite.True(balance.Equal(decimal.NewFromInt(1400)), "balance = %s", balance)
	suite.True(persisted.Equal(decimal.NewFromInt(1400)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestRecomputeBalance_EmptyJournal() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.account.Name).Return(&suite.account, nil).Once()
	suite.mockJournalRepo.On("SumLegs", ctx, suite.account.AccountID).
		Return(portsrepo.LegTotals{Debit: decimal.Zero, Credit: decimal.Zero}, nil).Once()
	suite.mockAccountRepo.On("SetCurrentBalance", ctx, suite.account.AccountID, mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	balance, err := suite.service.RecomputeBalance(ctx, suite.account.Name)

	suite.Require().NoError(err)
	suite.True(balance.Equal(suite.account.OpeningBalance))
}

func (suite *ReconcilerServiceTestSuite) TestRecomputeBalance_UnknownAccount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, "Nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecomputeBalance(ctx, "Nobody")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SumLegs", mock.Anything, mock.Anything)
}

func (suite *ReconcilerServiceTestSuite) TestRecomputeAll_ProcessesEveryAccount() {
	ctx := context.Background()
	other := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           "Gulf Supplies Co",
		OpeningBalance: decimal.Zero,
	}

	suite.mockAccountRepo.On("ListAllAccounts", ctx).Return([]domain.Account{suite.account, other}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.account.Name).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByName", ctx, other.Name).Return(&other, nil).Once()
	suite.mockJournalRepo.On("SumLegs", ctx, mock.AnythingOfType("string")).
		Return(portsrepo.LegTotals{Debit: decimal.Zero, Credit: decimal.Zero}, nil).Twice()
	suite.mockAccountRepo.On("SetCurrentBalance", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Return(nil).Twice()

	count, err := suite.service.RecomputeAll(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestRecomputeAll_AbortsOnFailure() {
	ctx := context.Background()
	other := domain.Account{AccountID: uuid.NewString(), Name: "Gulf Supplies Co"}

	suite.mockAccountRepo.On("ListAllAccounts", ctx).Return([]domain.Account{suite.account, other}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.account.Name).Return(&suite.account, nil).Once()
	suite.mockJournalRepo.On("SumLegs", ctx, suite.account.AccountID).
		Return(portsrepo.LegTotals{}, assert.AnError).Once()

	count, err := suite.service.RecomputeAll(ctx)

	suite.Require().Error(err)
	// Nothing finished before the failure.
	suite.Equal(0, count)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByName", mock.Anything, other.Name)
}

func TestReconcilerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerServiceTestSuite))
}
