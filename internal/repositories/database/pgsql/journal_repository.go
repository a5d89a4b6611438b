package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	"github.com/shopbooks/shopbooks/internal/models"
	"github.com/shopbooks/shopbooks/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const journalColumns = `id, entry_date, account_id, acc_name, offset_account_id, offset_acc, op_type, description, ref_no, base_amount, tax_amount, total_amount, debit, credit, due_date, posted_by, created_at`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxJournalRepository creates a new repository for journal data. It
// needs the account repository's transaction support to lock and adjust
// balances inside the posting transaction.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	var offsetID, offsetName sql.NullString
	err := row.Scan(
		&m.ID,
		&m.EntryDate,
		&m.AccountID,
		&m.AccountName,
		&offsetID,
		&offsetName,
		&m.OperationType,
		&m.Description,
		&m.Reference,
		&m.BaseAmount,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.Debit,
		&m.Credit,
		&m.DueDate,
		&m.PostedBy,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.OffsetAccountID = offsetID.String
	m.OffsetAccount = offsetName.String
	return &m, nil
}

func collectJournalEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entries = append(entries, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", rows.Err())
	}
	return mapping.ToDomainJournalEntrySlice(entries), nil
}

// nullable maps empty strings to NULL for the offset columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// SaveEntry inserts one journal row and applies the balance deltas to the
// affected accounts inside a single transaction. Account rows are locked
// first so concurrent postings serialize per account.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, deltas map[string]decimal.Decimal) (int64, error) {
	m := mapping.ToModelJournalEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	accountIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		accountIDs = append(accountIDs, id)
	}
	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return 0, err
	}
	if len(locked) != len(accountIDs) {
		return 0, fmt.Errorf("%w: posting references a missing account", apperrors.ErrNotFound)
	}

	query := `
		INSERT INTO journal (entry_date, account_id, acc_name, offset_account_id, offset_acc, op_type, description, ref_no, base_amount, tax_amount, total_amount, debit, credit, due_date, posted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id;
	`
	var entryID int64
	err = tx.QueryRow(ctx, query,
		m.EntryDate,
		m.AccountID,
		m.AccountName,
		nullable(m.OffsetAccountID),
		nullable(m.OffsetAccount),
		m.OperationType,
		m.Description,
		m.Reference,
		m.BaseAmount,
		m.TaxAmount,
		m.TotalAmount,
		m.Debit,
		m.Credit,
		m.DueDate,
		m.PostedBy,
		m.CreatedAt,
	).Scan(&entryID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert journal entry: %w", err)
	}

	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, time.Now().UTC()); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryID, nil
}

// FindEntryByID retrieves a specific journal entry.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal WHERE id = $1;`

	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %d: %w", entryID, err)
	}

	d := mapping.ToDomainJournalEntry(*m)
	return &d, nil
}

// ListEntriesInRange retrieves an account's entries with entry_date in
// [from, to]. The id tie-break keeps same-day rows in posting order.
func (r *PgxJournalRepository) ListEntriesInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal
		WHERE account_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal range for account %s: %w", accountID, err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

// SumLegs sums the debit and credit legs over all of an account's entries.
func (r *PgxJournalRepository) SumLegs(ctx context.Context, accountID string) (portsrepo.LegTotals, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal
		WHERE account_id = $1;
	`
	var totals portsrepo.LegTotals
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&totals.Debit, &totals.Credit); err != nil {
		return portsrepo.LegTotals{}, fmt.Errorf("failed to sum legs for account %s: %w", accountID, err)
	}
	return totals, nil
}

// SumLegsBefore sums the legs over entries dated strictly before the cutoff.
func (r *PgxJournalRepository) SumLegsBefore(ctx context.Context, accountID string, before time.Time) (portsrepo.LegTotals, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal
		WHERE account_id = $1 AND entry_date < $2;
	`
	var totals portsrepo.LegTotals
	if err := r.Pool.QueryRow(ctx, query, accountID, before).Scan(&totals.Debit, &totals.Credit); err != nil {
		return portsrepo.LegTotals{}, fmt.Errorf("failed to sum prior legs for account %s: %w", accountID, err)
	}
	return totals, nil
}

// ListEntriesByOperationType retrieves every entry of one operation type.
func (r *PgxJournalRepository) ListEntriesByOperationType(ctx context.Context, op domain.OperationType) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal
		WHERE op_type = $1
		ORDER BY entry_date, id;
	`
	rows, err := r.Pool.Query(ctx, query, string(op))
	if err != nil {
		return nil, fmt.Errorf("failed to query journal by op type %s: %w", op, err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

// ListRecentEntries retrieves the latest entries by id descending.
func (r *PgxJournalRepository) ListRecentEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal
		ORDER BY id DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent journal entries: %w", err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

// SearchEntries matches the query against account name, reference and
// description, case-insensitively, newest first.
func (r *PgxJournalRepository) SearchEntries(ctx context.Context, query string, limit int) ([]domain.JournalEntry, error) {
	sqlQuery := `
		SELECT ` + journalColumns + `
		FROM journal
		WHERE acc_name ILIKE '%' || $1 || '%'
		   OR COALESCE(offset_acc, '') ILIKE '%' || $1 || '%'
		   OR ref_no ILIKE '%' || $1 || '%'
		   OR description ILIKE '%' || $1 || '%'
		ORDER BY id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search journal: %w", err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

// ListAllEntries retrieves the whole journal ordered by id.
func (r *PgxJournalRepository) ListAllEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal ORDER BY id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all journal entries: %w", err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

// UpdateEntry overwrites the mutable fields of an existing entry.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		UPDATE journal
		SET account_id = $2, acc_name = $3, description = $4, base_amount = $5, tax_amount = $6, total_amount = $7, debit = $8, credit = $9
		WHERE id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.AccountID,
		m.AccountName,
		m.Description,
		m.BaseAmount,
		m.TaxAmount,
		m.TotalAmount,
		m.Debit,
		m.Credit,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %d: %w", m.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes a journal row.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journal WHERE id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %d: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAllEntries clears the journal. Used by restore only.
func (r *PgxJournalRepository) DeleteAllEntries(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM journal;`); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}

// InsertEntries inserts a batch of rows with store-assigned ids.
func (r *PgxJournalRepository) InsertEntries(ctx context.Context, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal (entry_date, account_id, acc_name, offset_account_id, offset_acc, op_type, description, ref_no, base_amount, tax_amount, total_amount, debit, credit, due_date, posted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	for _, entry := range entries {
		m := mapping.ToModelJournalEntry(entry)
		createdAt := m.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		batch.Queue(query,
			m.EntryDate,
			m.AccountID,
			m.AccountName,
			nullable(m.OffsetAccountID),
			nullable(m.OffsetAccount),
			m.OperationType,
			m.Description,
			m.Reference,
			m.BaseAmount,
			m.TaxAmount,
			m.TotalAmount,
			m.Debit,
			m.Credit,
			m.DueDate,
			m.PostedBy,
			createdAt,
		)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert journal batch: %w", err)
		}
	}
	return nil
}
