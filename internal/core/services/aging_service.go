package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
)

// agingService classifies deferred purchases by how overdue they are.
type agingService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewAgingService creates a new aging service.
func NewAgingService(journalRepo portsrepo.JournalRepositoryFacade) portssvc.AgingSvc {
	return &agingService{journalRepo: journalRepo}
}

var _ portssvc.AgingSvc = (*agingService)(nil)

// ComputeDues partitions deferred-purchase entries relative to asOf.
// An entry whose effective due date has arrived (daysOverdue >= 0) is due;
// one more than the grace period past due is also critical. Critical is
// always a subset of due.
func (s *agingService) ComputeDues(ctx context.Context, asOf time.Time) (*domain.DuesReport, error) {
	entries, err := s.journalRepo.ListEntriesByOperationType(ctx, domain.OpCreditPurchase)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deferred purchases")
		return nil, err
	}

	report := &domain.DuesReport{
		Due:      []domain.AgedEntry{},
		Critical: []domain.AgedEntry{},
	}
	for _, e := range entries {
		days := daysBetween(e.EffectiveDueDate(), asOf)
		if days < 0 {
			continue
		}
		aged := domain.AgedEntry{Entry: e, DaysOverdue: days}
		report.Due = append(report.Due, aged)
		if days > domain.DefaultDueDays {
			report.Critical = append(report.Critical, aged)
		}
	}

	s.LogDebug(ctx, "Dues computed",
		slog.Int("due", len(report.Due)),
		slog.Int("critical", len(report.Critical)))
	return report, nil
}

// daysBetween counts whole calendar days from a to b, negative when b
// precedes a. Time-of-day components are discarded first so a due date is
// overdue from midnight, not from a stored timestamp.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
