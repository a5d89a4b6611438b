package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/dto"
)

// createCodeAttempts bounds how many times CreateAccount re-derives a code
// after losing a uniqueness race.
const createCodeAttempts = 3

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	audit       portssvc.AuditSvc
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer adds an authorizer consulted for privileged operations
func WithAccountAuthorizer(authorizer portssvc.Authorizer) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = authorizer
	}
}

// WithAccountAudit adds the audit trail dependency
func WithAccountAudit(audit portssvc.AuditSvc) AccountServiceOption {
	return func(s *accountService) {
		s.audit = audit
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// generateAccountCode builds the next code for a category:
// {prefix}{year}-{0001..}, sequence scoped to the prefix+year pair.
func (s *accountService) generateAccountCode(ctx context.Context, category domain.AccountCategory, now time.Time) (string, error) {
	prefix := category.CodePrefix()
	year := now.Year()
	seq, err := s.accountRepo.NextCodeSequence(ctx, prefix, year)
	if err != nil {
		return "", fmt.Errorf("failed to derive next account code for %s%d: %w", prefix, year, err)
	}
	return fmt.Sprintf("%s%d-%04d", prefix, year, seq), nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, req.Category)
	}

	now := time.Now().UTC()

	// The opening balance seeds the cached current balance; no journal rows
	// exist yet, so the balance invariant holds trivially.
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           req.Name,
		Category:       req.Category,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		CreditLimit:    req.CreditLimit,
		Phone:          req.Phone,
		Address:        req.Address,
		TaxID:          req.TaxID,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Two concurrent creates can derive the same code; the unique index
	// rejects the loser, which re-derives and tries again.
	var err error
	for attempt := 0; attempt < createCodeAttempts; attempt++ {
		account.Code, err = s.generateAccountCode(ctx, req.Category, now)
		if err != nil {
			s.LogError(ctx, err, "Failed to generate account code",
				slog.String("category", string(req.Category)))
			return nil, err
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Account code taken, re-deriving",
				slog.String("code", account.Code))
			continue
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_name", account.Name))
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(ctx, userID, "CREATE_ACCOUNT", fmt.Sprintf("created account %s (%s)", account.Name, account.Code))
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, name)
		}
		s.LogError(ctx, err, "Failed to find account by name",
			slog.String("account_name", name))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, params.Search, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("search", params.Search))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
		updated = true
	}
	if req.Address != nil {
		account.Address = *req.Address
		updated = true
	}
	if req.TaxID != nil {
		account.TaxID = *req.TaxID
		updated = true
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
		}
		account.CreditLimit = *req.CreditLimit
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.String("account_id", accountID))
	return nil
}

// DeleteAccount hard-deletes the account row. Journal rows that reference it
// are left untouched; statements and reconciliation for other accounts are
// unaffected since all sums are keyed by account id.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.RequireCapability(ctx, userID, domain.CapDeleteEntry); err != nil {
		s.LogWarn(ctx, "User not authorized to delete account",
			slog.String("user_id", userID),
			slog.String("account_id", accountID))
		return err
	}

	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account",
			slog.String("account_id", accountID))
		return err
	}

	if s.audit != nil {
		s.audit.Record(ctx, userID, "DELETE_ACCOUNT", fmt.Sprintf("deleted account %s (%s)", account.Name, account.Code))
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_id", accountID),
		slog.String("account_name", account.Name))
	return nil
}
