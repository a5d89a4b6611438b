package services

import (
	"context"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopbooks/shopbooks/internal/dto"
)

// JournalPosterSvc defines the posting engine's contract.
type JournalPosterSvc interface {
	// PostTransaction validates and posts one transaction: a single journal
	// row plus the mirrored balance effects on both accounts.
	PostTransaction(ctx context.Context, req dto.PostTransactionRequest, postedBy string) (*domain.JournalEntry, error)
}

// JournalReaderSvc defines read operations on the journal.
type JournalReaderSvc interface {
	// GetEntryByID retrieves one journal entry.
	GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListRecentEntries retrieves the latest entries, newest first.
	ListRecentEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error)

	// SearchEntries matches the query against account name, reference and description.
	SearchEntries(ctx context.Context, query string, limit int) ([]domain.JournalEntry, error)
}

// JournalMaintainerSvc defines the privileged edit/delete contract.
type JournalMaintainerSvc interface {
	// UpdateEntry edits amount/account/description of an existing entry and
	// reconciles every account the edit touches. The op type never changes.
	UpdateEntry(ctx context.Context, entryID int64, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an entry and reconciles the accounts it touched.
	DeleteEntry(ctx context.Context, entryID int64, userID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalPosterSvc
	JournalReaderSvc
	JournalMaintainerSvc
}
