package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopbooks/shopbooks/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// dateLayout is the calendar-date format accepted on the posting surface.
const dateLayout = "2006-01-02"

// journalService implements the posting engine plus journal reads and the
// privileged edit/delete path.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountReaderSvc
	reconciler  portssvc.ReconcilerSvc
	audit       portssvc.AuditSvc
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalAuthorizer adds an authorizer consulted for privileged operations
func WithJournalAuthorizer(authorizer portssvc.Authorizer) JournalServiceOption {
	return func(s *journalService) {
		s.Authorizer = authorizer
	}
}

// WithJournalAudit adds the audit trail dependency
func WithJournalAudit(audit portssvc.AuditSvc) JournalServiceOption {
	return func(s *journalService) {
		s.audit = audit
	}
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountReaderSvc, reconciler portssvc.ReconcilerSvc, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		reconciler:  reconciler,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostTransaction validates and posts one transaction. One journal row is
// written carrying both parties; the offset account's mirrored effect is
// derived by swapping the legs, and both cached balances are updated in the
// same store transaction as the insert.
func (s *journalService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, postedBy string) (*domain.JournalEntry, error) {
	if req.BaseAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.BaseAmount)
	}
	if !req.OperationType.IsValid() {
		return nil, fmt.Errorf("%w: unknown operation type %q", apperrors.ErrValidation, req.OperationType)
	}

	entryDate, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", apperrors.ErrValidation, req.Date)
	}

	// Resolve both parties up front; a posting against a name that does not
	// resolve must fail before anything is written.
	primary, err := s.accountSvc.GetAccountByName(ctx, req.AccountName)
	if err != nil {
		return nil, err
	}
	var offset *domain.Account
	if req.OffsetAccount != "" {
		offset, err = s.accountSvc.GetAccountByName(ctx, req.OffsetAccount)
		if err != nil {
			return nil, err
		}
	}

	tax, total := accounting.ComputeAmounts(req.BaseAmount, req.ApplyTax)
	debit, credit := accounting.DeriveLegs(req.OperationType, total)

	dueDate, err := s.resolveDueDate(req, entryDate)
	if err != nil {
		return nil, err
	}

	reference := req.Reference
	if reference == "" {
		reference = accounting.GenerateReference(req.OperationType, time.Now())
	}

	entry := domain.JournalEntry{
		EntryDate:     entryDate,
		AccountID:     primary.AccountID,
		AccountName:   primary.Name,
		OperationType: req.OperationType,
		Description:   req.Description,
		Reference:     reference,
		BaseAmount:    req.BaseAmount,
		TaxAmount:     tax,
		TotalAmount:   total,
		Debit:         debit,
		Credit:        credit,
		DueDate:       dueDate,
		PostedBy:      postedBy,
		CreatedAt:     time.Now().UTC(),
	}

	deltas := map[string]decimal.Decimal{
		primary.AccountID: accounting.NetChange(debit, credit),
	}
	if offset != nil {
		entry.OffsetAccountID = offset.AccountID
		entry.OffsetAccount = offset.Name
		// Mirrored effect: the offset account sees the legs swapped.
		deltas[offset.AccountID] = accounting.NetChange(credit, debit)
	}

	entryID, err := s.journalRepo.SaveEntry(ctx, entry, deltas)
	if err != nil {
		s.LogError(ctx, err, "Failed to post transaction",
			slog.String("account_name", primary.Name),
			slog.String("op_type", string(req.OperationType)))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	entry.ID = entryID

	if s.audit != nil {
		s.audit.Record(ctx, postedBy, "POST_ENTRY",
			fmt.Sprintf("posted %s of %s on %s (ref %s)", req.OperationType, total, primary.Name, reference))
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.Int64("entry_id", entryID),
		slog.String("account_name", primary.Name),
		slog.String("reference", reference))
	return &entry, nil
}

// resolveDueDate applies the deferred-operation policy: explicit due dates
// are honored, missing ones default to entry date + 30 days, and
// non-deferred operations never carry one regardless of input.
func (s *journalService) resolveDueDate(req dto.PostTransactionRequest, entryDate time.Time) (*time.Time, error) {
	if !req.OperationType.IsDeferred() {
		return nil, nil
	}
	if req.DueDate != "" {
		due, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: due date must be YYYY-MM-DD, got %q", apperrors.ErrValidation, req.DueDate)
		}
		return &due, nil
	}
	due := entryDate.AddDate(0, 0, domain.DefaultDueDays)
	return &due, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry",
				slog.Int64("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListRecentEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.journalRepo.ListRecentEntries(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent entries")
		return nil, err
	}
	return entries, nil
}

func (s *journalService) SearchEntries(ctx context.Context, query string, limit int) ([]domain.JournalEntry, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.journalRepo.SearchEntries(ctx, query, limit)
	if err != nil {
		s.LogError(ctx, err, "Journal search failed", slog.String("query", query))
		return nil, err
	}
	return entries, nil
}

// UpdateEntry edits amount/account/description of an existing entry. The
// operation type is immutable, so the side stays fixed; amounts and legs are
// re-derived, then every touched account is reconciled from source data.
func (s *journalService) UpdateEntry(ctx context.Context, entryID int64, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	// Accounts to reconcile afterward: the original parties plus any new one.
	touched := map[string]string{entry.AccountID: entry.AccountName}
	if entry.OffsetAccountID != "" {
		touched[entry.OffsetAccountID] = entry.OffsetAccount
	}

	if req.AccountName != nil && *req.AccountName != entry.AccountName {
		account, err := s.accountSvc.GetAccountByName(ctx, *req.AccountName)
		if err != nil {
			return nil, err
		}
		entry.AccountID = account.AccountID
		entry.AccountName = account.Name
		touched[account.AccountID] = account.Name
	}

	if req.BaseAmount != nil {
		if req.BaseAmount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.BaseAmount)
		}
		entry.BaseAmount = *req.BaseAmount
		// Tax policy follows the original posting: a taxed entry stays taxed.
		applyTax := !entry.TaxAmount.IsZero()
		entry.TaxAmount, entry.TotalAmount = accounting.ComputeAmounts(entry.BaseAmount, applyTax)
		entry.Debit, entry.Credit = accounting.DeriveLegs(entry.OperationType, entry.TotalAmount)
	}

	if req.Description != nil {
		entry.Description = *req.Description
	}

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry",
			slog.Int64("entry_id", entryID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}

	s.reconcileTouched(ctx, touched)

	s.LogInfo(ctx, "Journal entry updated",
		slog.Int64("entry_id", entryID),
		slog.String("user_id", userID))
	return entry, nil
}

// DeleteEntry removes an entry and reconciles the accounts it touched.
// Privileged: the caller must hold the delete capability.
func (s *journalService) DeleteEntry(ctx context.Context, entryID int64, userID string) error {
	if err := s.RequireCapability(ctx, userID, domain.CapDeleteEntry); err != nil {
		s.LogWarn(ctx, "User not authorized to delete journal entry",
			slog.String("user_id", userID),
			slog.Int64("entry_id", entryID))
		return err
	}

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry",
			slog.Int64("entry_id", entryID))
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}

	touched := map[string]string{entry.AccountID: entry.AccountName}
	if entry.OffsetAccountID != "" {
		touched[entry.OffsetAccountID] = entry.OffsetAccount
	}
	s.reconcileTouched(ctx, touched)

	if s.audit != nil {
		s.audit.Record(ctx, userID, "DELETE_ENTRY", fmt.Sprintf("deleted journal entry %d (ref %s)", entryID, entry.Reference))
	}

	s.LogInfo(ctx, "Journal entry deleted",
		slog.Int64("entry_id", entryID),
		slog.String("user_id", userID))
	return nil
}

// reconcileTouched recomputes the named accounts from source data. Failures
// are logged, not propagated: the journal write already happened and a
// recompute can be re-run manually at any time.
func (s *journalService) reconcileTouched(ctx context.Context, touched map[string]string) {
	for _, name := range touched {
		if _, err := s.reconciler.RecomputeBalance(ctx, name); err != nil {
			s.LogError(ctx, err, "Failed to reconcile account after journal change",
				slog.String("account_name", name))
		}
	}
}
