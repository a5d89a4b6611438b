package dto

import (
	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementParams defines query parameters for building a statement.
type StatementParams struct {
	Account string `form:"account" binding:"required"` // account display name
	From    string `form:"from" binding:"required"`    // YYYY-MM-DD
	To      string `form:"to" binding:"required"`      // YYYY-MM-DD
}

// StatementRowResponse is one rendered statement line.
type StatementRowResponse struct {
	Date        string          `json:"date"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	EntryID     int64           `json:"entryID,omitempty"`
}

// StatementResponse wraps a rendered statement.
type StatementResponse struct {
	AccountName    string                 `json:"accountName"`
	From           string                 `json:"from"`
	To             string                 `json:"to"`
	Rows           []StatementRowResponse `json:"rows"`
	ClosingBalance decimal.Decimal        `json:"closingBalance"`
}

// ToStatementResponse converts a domain.Statement to its response DTO
func ToStatementResponse(s *domain.Statement) StatementResponse {
	rows := make([]StatementRowResponse, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = StatementRowResponse{
			Date:        r.Date.Format("2006-01-02"),
			Reference:   r.Reference,
			Description: r.Description,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Balance:     r.Balance,
			EntryID:     r.EntryID,
		}
	}
	return StatementResponse{
		AccountName:    s.AccountName,
		From:           s.From.Format("2006-01-02"),
		To:             s.To.Format("2006-01-02"),
		Rows:           rows,
		ClosingBalance: s.ClosingBalance(),
	}
}
