package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reconcilerService restores cached account balances from source data.
// The cached balance is a derived value; the journal plus the opening
// balance is the source of truth, so a recompute is always safe to run.
type reconcilerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewReconcilerService creates a new reconciler service.
func NewReconcilerService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.ReconcilerSvc {
	return &reconcilerService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.ReconcilerSvc = (*reconcilerService)(nil)

// RecomputeBalance recalculates one account's balance as
// opening + sum(debits) - sum(credits) over its full journal history,
// persists it, and returns it.
func (s *reconcilerService) RecomputeBalance(ctx context.Context, accountName string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, accountName)
	if err != nil {
		return decimal.Zero, err
	}

	totals, err := s.journalRepo.SumLegs(ctx, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum journal legs",
			slog.String("account_id", account.AccountID))
		return decimal.Zero, err
	}

	balance := account.OpeningBalance.Add(totals.Debit).Sub(totals.Credit)
	if err := s.accountRepo.SetCurrentBalance(ctx, account.AccountID, balance, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to persist recomputed balance",
			slog.String("account_id", account.AccountID))
		return decimal.Zero, err
	}

	s.LogDebug(ctx, "Account balance recomputed",
		slog.String("account_name", accountName),
		slog.String("balance", balance.String()))
	return balance, nil
}

// RecomputeAll recalculates every account independently. An error on one
// account aborts the pass; accounts already recomputed keep their corrected
// balances, and re-running the pass is harmless.
func (s *reconcilerService) RecomputeAll(ctx context.Context) (int, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for full recompute")
		return 0, err
	}

	for i, account := range accounts {
		if _, err := s.RecomputeBalance(ctx, account.Name); err != nil {
			return i, err
		}
	}

	s.LogInfo(ctx, "Full balance recompute finished",
		slog.Int("accounts", len(accounts)))
	return len(accounts), nil
}
