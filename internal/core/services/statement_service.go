package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
)

// statementService builds account statements: a synthetic carried-forward
// row followed by the period's entries, each annotated with a running balance.
type statementService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewStatementService creates a new statement service.
func NewStatementService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.StatementSvc {
	return &statementService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.StatementSvc = (*statementService)(nil)

// BuildStatement produces the statement for [from, to]. The carried-forward
// row holds opening balance plus the net of every entry dated strictly
// before the period; each following row adds its own net change. The last
// row's balance therefore equals the account's reconciled balance when the
// period extends to today.
func (s *statementService) BuildStatement(ctx context.Context, accountName string, from, to time.Time) (*domain.Statement, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end %s precedes start %s",
			apperrors.ErrInvalidRange, to.Format(dateLayout), from.Format(dateLayout))
	}

	account, err := s.accountRepo.FindAccountByName(ctx, accountName)
	if err != nil {
		return nil, err
	}

	prior, err := s.journalRepo.SumLegsBefore(ctx, account.AccountID, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum prior-period legs",
			slog.String("account_id", account.AccountID))
		return nil, err
	}
	carried := account.OpeningBalance.Add(prior.Debit).Sub(prior.Credit)

	entries, err := s.journalRepo.ListEntriesInRange(ctx, account.AccountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list statement entries",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	rows := make([]domain.StatementRow, 0, len(entries)+1)
	rows = append(rows, domain.StatementRow{
		Date:        from,
		Reference:   domain.CarriedForwardRef,
		Description: domain.CarriedForwardDescription,
		Balance:     carried,
	})

	running := carried
	for _, e := range entries {
		running = running.Add(e.Debit).Sub(e.Credit)
		rows = append(rows, domain.StatementRow{
			Date:        e.EntryDate,
			Reference:   e.Reference,
			Description: e.Description,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Balance:     running,
			EntryID:     e.ID,
		})
	}

	return &domain.Statement{
		AccountID:   account.AccountID,
		AccountName: account.Name,
		From:        from,
		To:          to,
		Rows:        rows,
	}, nil
}
