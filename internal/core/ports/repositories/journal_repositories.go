package repositories

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LegTotals carries the summed debit/credit legs for one account.
type LegTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntriesInRange retrieves an account's entries with entry_date in
	// [from, to], ordered ascending by (entry_date, id).
	ListEntriesInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.JournalEntry, error)

	// SumLegs sums the debit and credit legs over all of an account's entries.
	SumLegs(ctx context.Context, accountID string) (LegTotals, error)

	// SumLegsBefore sums the legs over entries dated strictly before the cutoff.
	SumLegsBefore(ctx context.Context, accountID string, before time.Time) (LegTotals, error)

	// ListEntriesByOperationType retrieves every entry of one operation type.
	ListEntriesByOperationType(ctx context.Context, op domain.OperationType) ([]domain.JournalEntry, error)

	// ListRecentEntries retrieves the latest entries by id descending.
	ListRecentEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error)

	// SearchEntries matches the query against account name, reference and
	// description, case-insensitively, newest first.
	SearchEntries(ctx context.Context, query string, limit int) ([]domain.JournalEntry, error)

	// ListAllEntries retrieves the whole journal ordered by id. Used by snapshots.
	ListAllEntries(ctx context.Context) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry inserts one journal row and applies the given balance deltas
	// to the affected accounts inside a single transaction. Returns the
	// store-assigned entry id.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, deltas map[string]decimal.Decimal) (int64, error)

	// UpdateEntry overwrites the mutable fields of an existing entry
	// (account, amounts, description, legs). The operation type is immutable.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes a journal row.
	DeleteEntry(ctx context.Context, entryID int64) error

	// DeleteAllEntries clears the journal. Used by restore only.
	DeleteAllEntries(ctx context.Context) error

	// InsertEntries inserts a batch of rows with store-assigned ids.
	InsertEntries(ctx context.Context, entries []domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
