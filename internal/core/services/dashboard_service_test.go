package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAgingSvc stubs the aging dependency of the dashboard.
type MockAgingSvc struct {
	mock.Mock
}

var _ portssvc.AgingSvc = (*MockAgingSvc)(nil)

func (m *MockAgingSvc) ComputeDues(ctx context.Context, asOf time.Time) (*domain.DuesReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DuesReport), args.Error(1)
}

type DashboardServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	mockAging       *MockAgingSvc
	service         portssvc.DashboardSvc
	asOf            time.Time
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAging = new(MockAgingSvc)
	suite.service = services.NewDashboardService(suite.mockAccountRepo, suite.mockJournalRepo, suite.mockAging)
	suite.asOf = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *DashboardServiceTestSuite) TestDashboard_AggregatesPerCategory() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "a1", Name: "Al Noor Trading", Category: domain.CategoryCustomer, CurrentBalance: decimal.NewFromInt(300), IsActive: true},
		{AccountID: "a2", Name: "Desert Mart", Category: domain.CategoryCustomer, CurrentBalance: decimal.NewFromInt(200), IsActive: true},
		{AccountID: "a3", Name: "Gulf Supplies Co", Category: domain.CategorySupplier, CurrentBalance: decimal.NewFromInt(-150), IsActive: true},
		// Inactive accounts stay off the dashboard.
		{AccountID: "a4", Name: "Closed Shop", Category: domain.CategoryCustomer, CurrentBalance: decimal.NewFromInt(999), IsActive: false},
	}

	suite.mockAccountRepo.On("ListAllAccounts", ctx).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("ListRecentEntries", ctx, 10).Return([]domain.JournalEntry{{ID: 1}}, nil).Once()
	suite.mockAging.On("ComputeDues", ctx, suite.asOf).Return(&domain.DuesReport{
		Due: []domain.AgedEntry{
			{Entry: domain.JournalEntry{ID: 2, TotalAmount: decimal.NewFromInt(100)}, DaysOverdue: 5},
			{Entry: domain.JournalEntry{ID: 3, TotalAmount: decimal.NewFromInt(400)}, DaysOverdue: 45},
		},
		Critical: []domain.AgedEntry{
			{Entry: domain.JournalEntry{ID: 3, TotalAmount: decimal.NewFromInt(400)}, DaysOverdue: 45},
		},
	}, nil).Once()

	resp, err := suite.service.Dashboard(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)

	// Categories come back sorted by name: CUSTOMER before SUPPLIER.
	suite.Require().Len(resp.CategoryTotals, 2)
	suite.Equal(domain.CategoryCustomer, resp.CategoryTotals[0].Category)
	suite.True(resp.CategoryTotals[0].Total.Equal(decimal.NewFromInt(500)))
	suite.Equal(2, resp.CategoryTotals[0].Count)
	suite.Equal(domain.CategorySupplier, resp.CategoryTotals[1].Category)
	suite.True(resp.CategoryTotals[1].Total.Equal(decimal.NewFromInt(-150)))

	suite.Len(resp.RecentEntries, 1)
	suite.True(resp.DueTotal.Equal(decimal.NewFromInt(500)))
	suite.True(resp.CriticalTotal.Equal(decimal.NewFromInt(400)))
}

func (suite *DashboardServiceTestSuite) TestDashboard_AgingFailurePropagates() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAllAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockJournalRepo.On("ListRecentEntries", ctx, 10).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockAging.On("ComputeDues", ctx, suite.asOf).Return(nil, context.DeadlineExceeded).Once()

	_, err := suite.service.Dashboard(ctx, suite.asOf)

	suite.Require().Error(err)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
