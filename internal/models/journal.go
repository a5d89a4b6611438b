package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the persisted shape of a journal row. The id is a
// bigserial and doubles as the same-day ordering tie-break.
type JournalEntry struct {
	ID              int64           `db:"id"`
	EntryDate       time.Time       `db:"entry_date"`
	AccountID       string          `db:"account_id"`
	AccountName     string          `db:"acc_name"`
	OffsetAccountID string          `db:"offset_account_id"` // nullable
	OffsetAccount   string          `db:"offset_acc"`        // nullable
	OperationType   string          `db:"op_type"`
	Description     string          `db:"description"`
	Reference       string          `db:"ref_no"`
	BaseAmount      decimal.Decimal `db:"base_amount"`
	TaxAmount       decimal.Decimal `db:"tax_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Debit           decimal.Decimal `db:"debit"`
	Credit          decimal.Decimal `db:"credit"`
	DueDate         *time.Time      `db:"due_date"` // nullable
	PostedBy        string          `db:"posted_by"`
	CreatedAt       time.Time       `db:"created_at"`
}
