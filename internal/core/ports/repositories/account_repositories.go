package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByName retrieves an account by its unique display name.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves accounts, optionally filtered by a name substring.
	ListAccounts(ctx context.Context, nameFilter string, limit int, offset int) ([]domain.Account, error)

	// ListAllAccounts retrieves every account. Used by the reconciler's full pass.
	ListAllAccounts(ctx context.Context) ([]domain.Account, error)

	// NextCodeSequence returns the next free sequence number for an account
	// code prefix+year pair, starting at 1 when none exist yet.
	NextCodeSequence(ctx context.Context, prefix string, year int) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetCurrentBalance overwrites the cached balance of an account.
	SetCurrentBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// DeleteAccount hard-deletes an account row. Journal rows referencing it
	// are left in place; the caller owns that decision.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountTransactionSupport defines operations used inside posting transactions
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx adds each delta to the matching account's cached
	// balance within a transaction. Rows must already be locked.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
