package dto

import (
	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DuesParams defines query parameters for the dues report.
type DuesParams struct {
	AsOf string `form:"asOf"` // YYYY-MM-DD, defaults to today
}

// AgedEntryResponse is one overdue entry with its aging annotation.
type AgedEntryResponse struct {
	Entry       JournalEntryResponse `json:"entry"`
	DueDate     string               `json:"dueDate"`
	DaysOverdue int                  `json:"daysOverdue"`
}

// AccountDuesSummary aggregates an account's due amounts for display.
type AccountDuesSummary struct {
	AccountName string          `json:"accountName"`
	Total       decimal.Decimal `json:"total"`
	EntryCount  int             `json:"entryCount"`
}

// DuesResponse wraps the aging report: entry-level detail plus the
// per-account aggregation the UI renders.
type DuesResponse struct {
	AsOf       string               `json:"asOf"`
	Due        []AgedEntryResponse  `json:"due"`
	Critical   []AgedEntryResponse  `json:"critical"`
	ByAccount  []AccountDuesSummary `json:"byAccount"`
	TotalDue   decimal.Decimal      `json:"totalDue"`
	TotalCount int                  `json:"totalCount"`
}

// CategoryTotal is one dashboard slice: summed balances per account category.
type CategoryTotal struct {
	Category domain.AccountCategory `json:"category"`
	Total    decimal.Decimal        `json:"total"`
	Count    int                    `json:"count"`
}

// DashboardResponse is the landing-page summary.
type DashboardResponse struct {
	CategoryTotals []CategoryTotal        `json:"categoryTotals"`
	RecentEntries  []JournalEntryResponse `json:"recentEntries"`
	DueTotal       decimal.Decimal        `json:"dueTotal"`
	CriticalTotal  decimal.Decimal        `json:"criticalTotal"`
}

// ToAgedEntryResponse converts a domain.AgedEntry to its response DTO
func ToAgedEntryResponse(a domain.AgedEntry) AgedEntryResponse {
	return AgedEntryResponse{
		Entry:       ToJournalEntryResponse(&a.Entry),
		DueDate:     a.Entry.EffectiveDueDate().Format("2006-01-02"),
		DaysOverdue: a.DaysOverdue,
	}
}
