package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopspring/decimal"
)

// dashboardRecentEntries is how many journal rows the landing page shows.
const dashboardRecentEntries = 10

// dashboardService assembles the landing-page summary from the account,
// journal and aging views.
type dashboardService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	aging       portssvc.AgingSvc
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, aging portssvc.AgingSvc) portssvc.DashboardSvc {
	return &dashboardService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		aging:       aging,
	}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) Dashboard(ctx context.Context, asOf time.Time) (*dto.DashboardResponse, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for dashboard")
		return nil, err
	}

	byCategory := map[domain.AccountCategory]*dto.CategoryTotal{}
	for _, a := range accounts {
		if !a.IsActive {
			continue
		}
		ct, ok := byCategory[a.Category]
		if !ok {
			ct = &dto.CategoryTotal{Category: a.Category}
			byCategory[a.Category] = ct
		}
		ct.Total = ct.Total.Add(a.CurrentBalance)
		ct.Count++
	}
	totals := make([]dto.CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		totals = append(totals, *ct)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })

	recent, err := s.journalRepo.ListRecentEntries(ctx, dashboardRecentEntries)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent entries for dashboard")
		return nil, err
	}

	report, err := s.aging.ComputeDues(ctx, asOf)
	if err != nil {
		return nil, err
	}
	dueTotal := decimal.Zero
	for _, e := range report.Due {
		dueTotal = dueTotal.Add(e.Entry.TotalAmount)
	}
	criticalTotal := decimal.Zero
	for _, e := range report.Critical {
		criticalTotal = criticalTotal.Add(e.Entry.TotalAmount)
	}

	return &dto.DashboardResponse{
		CategoryTotals: totals,
		RecentEntries:  dto.ToListJournalEntryResponse(recent),
		DueTotal:       dueTotal,
		CriticalTotal:  criticalTotal,
	}, nil
}
