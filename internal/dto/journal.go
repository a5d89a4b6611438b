package dto

import (
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostTransactionRequest defines the data needed to post a journal entry.
// Dates are calendar dates in YYYY-MM-DD form.
type PostTransactionRequest struct {
	AccountName   string               `json:"accountName" binding:"required"`
	OffsetAccount string               `json:"offsetAccount"`
	OperationType domain.OperationType `json:"operationType" binding:"required"`
	BaseAmount    decimal.Decimal      `json:"baseAmount" binding:"required"`
	ApplyTax      bool                 `json:"applyTax"`
	Description   string               `json:"description"`
	Reference     string               `json:"reference"` // generated when empty
	Date          string               `json:"date" binding:"required"`
	DueDate       string               `json:"dueDate"` // optional, deferred ops only
}

// UpdateJournalEntryRequest defines the fields an edit may change.
// The operation type is immutable after posting.
type UpdateJournalEntryRequest struct {
	AccountName *string          `json:"accountName"`
	BaseAmount  *decimal.Decimal `json:"baseAmount"`
	Description *string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	ID            int64                `json:"id"`
	EntryDate     string               `json:"entryDate"`
	AccountName   string               `json:"accountName"`
	OffsetAccount string               `json:"offsetAccount,omitempty"`
	OperationType domain.OperationType `json:"operationType"`
	Description   string               `json:"description"`
	Reference     string               `json:"reference"`
	BaseAmount    decimal.Decimal      `json:"baseAmount"`
	TaxAmount     decimal.Decimal      `json:"taxAmount"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	Debit         decimal.Decimal      `json:"debit"`
	Credit        decimal.Decimal      `json:"credit"`
	DueDate       string               `json:"dueDate,omitempty"`
	PostedBy      string               `json:"postedBy"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		ID:            e.ID,
		EntryDate:     e.EntryDate.Format("2006-01-02"),
		AccountName:   e.AccountName,
		OffsetAccount: e.OffsetAccount,
		OperationType: e.OperationType,
		Description:   e.Description,
		Reference:     e.Reference,
		BaseAmount:    e.BaseAmount,
		TaxAmount:     e.TaxAmount,
		TotalAmount:   e.TotalAmount,
		Debit:         e.Debit,
		Credit:        e.Credit,
		PostedBy:      e.PostedBy,
		CreatedAt:     e.CreatedAt,
	}
	if e.DueDate != nil {
		resp.DueDate = e.DueDate.Format("2006-01-02")
	}
	return resp
}

// ToListJournalEntryResponse converts a slice of entries to response DTOs
func ToListJournalEntryResponse(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}

// SearchJournalParams defines query parameters for the journal search.
type SearchJournalParams struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit,default=50"`
}

// RecentJournalParams defines query parameters for the recent-entries listing.
type RecentJournalParams struct {
	Limit int `form:"limit,default=20"`
}
