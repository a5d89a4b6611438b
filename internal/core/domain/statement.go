package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarriedForwardRef is the reference shown on the synthetic opening row of a statement.
const CarriedForwardRef = "---"

// CarriedForwardDescription is the description shown on the synthetic opening row.
const CarriedForwardDescription = "carried forward from prior period"

// StatementRow is one line of an account statement: either the synthetic
// carried-forward row or a journal entry annotated with the cumulative
// running balance. It is a view-time projection, never persisted.
type StatementRow struct {
	Date        time.Time       `json:"date"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	EntryID     int64           `json:"entryID,omitempty"` // zero on the carried-forward row
}

// Statement is the full projection for an account over a period.
type Statement struct {
	AccountID   string         `json:"accountID"`
	AccountName string         `json:"accountName"`
	From        time.Time      `json:"from"`
	To          time.Time      `json:"to"`
	Rows        []StatementRow `json:"rows"`
}

// ClosingBalance returns the running balance after the last row.
// A statement always has at least the carried-forward row.
func (s Statement) ClosingBalance() decimal.Decimal {
	if len(s.Rows) == 0 {
		return decimal.Zero
	}
	return s.Rows[len(s.Rows)-1].Balance
}
